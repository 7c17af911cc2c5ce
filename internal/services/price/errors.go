package price

// PriceError is a custom error type for price service errors
type PriceError string

// Error implements the error interface
func (e PriceError) Error() string {
	return string(e)
}

const (
	ErrReportUnavailable PriceError = "price report is not available yet"
	ErrNilConfig         PriceError = "config cannot be nil"
	ErrNilClient         PriceError = "subscan client cannot be nil"
	ErrNilRenderer       PriceError = "chart renderer cannot be nil"
	ErrNilReportRepo     PriceError = "price report repository cannot be nil"
	ErrNilClock          PriceError = "clock cannot be nil"
)
