package verification

// VerificationError is a custom error type for verification errors
type VerificationError string

// Error implements the error interface
func (e VerificationError) Error() string {
	return string(e)
}

const (
	ErrRoleNotFound     VerificationError = "role not found"
	ErrNilConfig        VerificationError = "config cannot be nil"
	ErrNilGateway       VerificationError = "gateway cannot be nil"
	ErrNilGenerator     VerificationError = "challenge generator cannot be nil"
	ErrNilClock         VerificationError = "clock cannot be nil"
	ErrNilUUIDGenerator VerificationError = "UUID generator cannot be nil"
	ErrEmptyRoleName    VerificationError = "role name cannot be empty"
	ErrInvalidTimeout   VerificationError = "challenge timeout must be positive"
	ErrInvalidInput     VerificationError = "user ID and channel ID are required"
)
