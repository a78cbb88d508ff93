package leave

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/logging"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/smart-attendance-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service  leave.LeaveService
	employee employee.Employee
	reviewer user.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	db := memory.NewDB()
	employees := memory.NewEmployeeRepository(db)
	users := memory.NewUserRepository(db)

	emp, err := employees.Create(ctx, employee.Employee{Name: "Jane Doe", Email: "jane@example.com"})
	require.NoError(t, err)
	admin, err := users.Create(ctx, user.User{Name: "Ada Admin", Email: "ada@example.com", Role: user.RoleAdmin}, "cred-admin")
	require.NoError(t, err)

	return fixture{
		service:  NewLeaveService(memory.NewLeaveRequestRepository(db), employees, users, logging.Discard()),
		employee: emp,
		reviewer: admin,
	}
}

func (f fixture) apply(t *testing.T, start, end string) leave.Request {
	t.Helper()
	created, err := f.service.Apply(context.Background(), leave.ApplyRequest{
		EmployeeID: f.employee.ID,
		StartDate:  start,
		EndDate:    end,
		Reason:     "family",
		LeaveType:  "CASUAL",
	})
	require.NoError(t, err)
	return created
}

func TestApply(t *testing.T) {
	f := newFixture(t)
	created := f.apply(t, "2026-03-02", "2026-03-04")

	require.NotNil(t, created.ID)
	assert.Equal(t, leave.StatusPending, created.Status)
	assert.Equal(t, "Jane Doe", created.EmployeeName)

	t.Run("overlap", func(t *testing.T) {
		_, err := f.service.Apply(context.Background(), leave.ApplyRequest{
			EmployeeID: f.employee.ID, StartDate: "2026-03-04", EndDate: "2026-03-05", Reason: "again",
		})
		assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
	})

	t.Run("unknown employee", func(t *testing.T) {
		missing := int64(404)
		_, err := f.service.Apply(context.Background(), leave.ApplyRequest{
			EmployeeID: &missing, StartDate: "2026-04-01", EndDate: "2026-04-01", Reason: "x",
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("invalid dates", func(t *testing.T) {
		_, err := f.service.Apply(context.Background(), leave.ApplyRequest{
			EmployeeID: f.employee.ID, StartDate: "2026-04-05", EndDate: "2026-04-01", Reason: "x",
		})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "endDate")
	})
}

func TestReview(t *testing.T) {
	ctx := context.Background()

	t.Run("approve", func(t *testing.T) {
		f := newFixture(t)
		req := f.apply(t, "2026-03-02", "2026-03-02")

		approved, err := f.service.Approve(ctx, *req.ID, f.reviewer.ID, leave.ReviewRequest{Remarks: "enjoy"})
		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, approved.Status)
		require.NotNil(t, approved.ApprovedBy)
		assert.Equal(t, f.reviewer.ID, *approved.ApprovedBy)
		assert.Equal(t, "Ada Admin", approved.ApprovedByName)
		assert.Equal(t, "enjoy", approved.AdminRemarks)

		_, err = f.service.Reject(ctx, *req.ID, f.reviewer.ID, leave.ReviewRequest{})
		assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
	})

	t.Run("reject frees the dates", func(t *testing.T) {
		f := newFixture(t)
		req := f.apply(t, "2026-03-02", "2026-03-03")

		rejected, err := f.service.Reject(ctx, *req.ID, f.reviewer.ID, leave.ReviewRequest{Remarks: "busy week"})
		require.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, rejected.Status)

		f.apply(t, "2026-03-03", "2026-03-03")
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Approve(ctx, 999, f.reviewer.ID, leave.ReviewRequest{})
		assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	})
}
