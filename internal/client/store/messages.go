package store

import (
	"errors"

	"github.com/dmitrijs2005/helpdesk/internal/client/client"
	"github.com/dmitrijs2005/helpdesk/internal/client/models"
)

// Notification texts.
const (
	msgSignupOK       = "Account created successfully"
	msgAdminSignupOK  = "Admin account created successfully"
	msgSignupFail     = "Signup failed"
	msgLoginOK        = "Logged in successfully"
	msgAdminLoginOK   = "Admin logged in successfully"
	msgLoginFail      = "Login failed"
	msgLogoutOK       = "Logged out successfully"
	msgLogoutFail     = "Logout failed"
	msgFetchFail      = "Failed to fetch tickets"
	msgCreateOK       = "Ticket created successfully"
	msgCreateFail     = "Ticket creation failed"
	msgCommentOK      = "Comment added successfully"
	msgCommentFail    = "Failed to add comment"
	msgStatusOK       = "Ticket status updated"
	msgStatusFail     = "Failed to update ticket"
	msgPriorityOK     = "Priority updated successfully"
	msgPriorityFail   = "Failed to update priority"
	msgAssignOK       = "Ticket assigned successfully"
	msgAssignFail     = "Ticket assignment failed"
	msgDeleteOK       = "Ticket deleted successfully"
	msgDeleteFail     = "Ticket deletion failed"
	msgRemoveOK       = "Ticket removed successfully"
	msgRemoveFail     = "Ticket removal failed"
)

// inputErrors are rejected before any request is sent; their own text is
// more useful to the user than the generic fallback.
var inputErrors = []error{
	models.ErrCredentialsRequired,
	models.ErrTitleRequired,
	models.ErrCommentRequired,
	models.ErrTicketIDRequired,
	models.ErrEngineerIDRequired,
	models.ErrInvalidStatus,
	models.ErrInvalidPriority,
}

// failureMessage picks the text of a failure notification: the server's
// message, the input error, or the fallback.
func failureMessage(err error, fallback string) string {
	if errors.Is(err, client.ErrMalformedResponse) {
		return fallback
	}
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return err.Error()
		}
	}
	return client.MessageOrFallback(err, fallback)
}
