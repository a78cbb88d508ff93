package attendance

import "context"

type AttendanceService interface {
	// ProcessChat parses a chat export into records for req.Date.
	ProcessChat(ctx context.Context, req ProcessChatRequest) ([]Record, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (Record, error)
}
