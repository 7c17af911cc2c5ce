package gateway

// GatewayError is a custom error type for gateway errors
type GatewayError string

// Error implements the error interface
func (e GatewayError) Error() string {
	return string(e)
}

const (
	ErrWaitTimeout    GatewayError = "timed out waiting for message"
	ErrNilConfig      GatewayError = "config cannot be nil"
	ErrNilSession     GatewayError = "discord session cannot be nil"
	ErrNilWaiters     GatewayError = "waiters cannot be nil"
	ErrEmptyGuildID   GatewayError = "guild ID cannot be empty"
	ErrNilPredicate   GatewayError = "predicate cannot be nil"
	ErrInvalidTimeout GatewayError = "timeout must be positive"
)
