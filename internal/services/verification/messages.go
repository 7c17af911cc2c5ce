package verification

import "fmt"

const (
	MessageAlreadyVerified = "You are already verified."
	MessageTimedOut        = "Timed out waiting for response."
	MessageIncorrect       = "Incorrect response."
)

func challengeMessage(challenge string) string {
	return "Please enter the following characters to verify that you are a human: " + challenge
}

func grantedMessage(roleName string) string {
	return fmt.Sprintf("You are likely to be a human and have been assigned the %q role!", roleName)
}
