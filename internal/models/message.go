package models

// Message is an inbound guild text message
type Message struct {
	// ID is the Discord message ID
	ID string

	// ChannelID is the channel the message was posted in
	ChannelID string

	// AuthorID is the Discord user ID of the author
	AuthorID string

	// AuthorName is the display name of the author
	AuthorName string

	// Content is the raw text of the message
	Content string
}

// Attachment is a file sent alongside an outbound message
type Attachment struct {
	// Name is the file name, also used for attachment:// references
	Name string

	// ContentType is the MIME type of Data
	ContentType string

	Data []byte
}
