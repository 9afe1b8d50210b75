// internal/app/features/reports/csv.go
package reports

import (
	"net/http"
	"time"

	"github.com/dalemusser/mediateam/internal/app/system/csvutil"
	"github.com/dalemusser/mediateam/internal/app/system/timeouts"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.uber.org/zap"
)

var submissionHeader = []string{
	"ID", "Full Name", "Email", "Phone", "Ministry Areas", "Availability",
	"Status", "Review Notes", "Reviewed At", "Submitted At",
}

var userHeader = []string{
	"ID", "Full Name", "Email", "Phone", "Status", "Last Login", "Created At",
}

// ServeSubmissionsCSV handles GET /reports/submissions.csv. Rows are
// written as they are read, so a failure partway through truncates the
// file and is only logged.
func (h *Handler) ServeSubmissionsCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "submissions csv")
	defer cancel()

	cw := csvutil.Attach(w, "submissions", time.Now())
	if err := cw.Write(submissionHeader); err != nil {
		h.Log.Warn("write csv header failed", zap.Error(err))
		return
	}

	rows := 0
	err := h.Submissions.Each(ctx, func(s models.Submission) error {
		rows++
		return cw.Write([]string{
			s.ID.Hex(),
			csvutil.Cell(s.FullName),
			csvutil.Cell(s.Email),
			csvutil.Cell(s.Phone),
			csvutil.Join(s.MinistryAreas),
			csvutil.Join(s.Availability),
			s.Status,
			csvutil.Cell(s.ReviewNotes),
			csvutil.Time(s.ReviewedAt),
			csvutil.Time(&s.CreatedAt),
		})
	})
	cw.Flush()
	if err == nil {
		err = cw.Error()
	}
	if err != nil {
		h.Log.Error("submissions csv export failed", zap.Error(err), zap.Int("rows_written", rows))
		return
	}
	h.Log.Info("submissions csv exported", zap.Int("rows", rows))
}

// ServeUsersCSV handles GET /reports/users.csv.
func (h *Handler) ServeUsersCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "users csv")
	defer cancel()

	cw := csvutil.Attach(w, "users", time.Now())
	if err := cw.Write(userHeader); err != nil {
		h.Log.Warn("write csv header failed", zap.Error(err))
		return
	}

	rows := 0
	err := h.Users.Each(ctx, func(u models.User) error {
		rows++
		return cw.Write([]string{
			u.ID.Hex(),
			csvutil.Cell(u.FullName),
			csvutil.Cell(u.Email),
			csvutil.Cell(u.Phone),
			u.Status,
			csvutil.Time(u.LastLoginAt),
			csvutil.Time(&u.CreatedAt),
		})
	})
	cw.Flush()
	if err == nil {
		err = cw.Error()
	}
	if err != nil {
		h.Log.Error("users csv export failed", zap.Error(err), zap.Int("rows_written", rows))
		return
	}
	h.Log.Info("users csv exported", zap.Int("rows", rows))
}
