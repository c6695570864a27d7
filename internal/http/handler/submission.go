package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"regapi/internal/repository"
	"regapi/internal/service"
	"regapi/internal/validation"
)

// parseID reads the :id path parameter. A non-numeric id is
// indistinguishable from an unknown one at the API surface, so callers
// treat a parse failure as not found.
func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// CreateSubmission handles POST /api/submissions.
func CreateSubmission(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in validation.SubmissionInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid request body")
		}

		sub, err := svc.Create(c.UserContext(), in)
		if err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				return writeValidationError(c, verr.Errors)
			}
			return writeError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		return writeData(c, fiber.StatusCreated, "Submission created successfully", sub)
	}
}

// ListSubmissions handles GET /api/submissions with filtering and
// pagination query parameters.
func ListSubmissions(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid page parameter")
		}
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid limit parameter")
		}

		f := repository.Filter{
			Country: c.Query("country"),
			Gender:  c.Query("gender"),
			Search:  c.Query("search"),
		}
		if v := c.Query("minAge"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "Invalid minAge parameter")
			}
			f.MinAge = &n
		}
		if v := c.Query("maxAge"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "Invalid maxAge parameter")
			}
			f.MaxAge = &n
		}

		res, err := svc.List(c.UserContext(), service.ListParams{Page: page, Limit: limit, Filter: f})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Internal server error")
		}

		return c.JSON(fiber.Map{
			"success":    true,
			"count":      res.Total,
			"page":       res.Page,
			"limit":      res.Limit,
			"totalPages": res.TotalPages,
			"data":       res.Items,
		})
	}
}

// GetSubmission handles GET /api/submissions/:id.
func GetSubmission(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusNotFound, "Submission not found")
		}
		sub, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Submission not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		return writeData(c, fiber.StatusOK, "", sub)
	}
}

// ReplaceSubmission handles PUT /api/submissions/:id (full replace,
// revalidated).
func ReplaceSubmission(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusNotFound, "Submission not found")
		}
		var in validation.SubmissionInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid request body")
		}

		sub, err := svc.Replace(c.UserContext(), id, in)
		if err != nil {
			var verr *service.ValidationError
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "Submission not found")
			case errors.As(err, &verr):
				return writeValidationError(c, verr.Errors)
			default:
				return writeError(c, fiber.StatusInternalServerError, "Internal server error")
			}
		}
		return writeData(c, fiber.StatusOK, "Submission updated successfully", sub)
	}
}

// PatchSubmission handles PATCH /api/submissions/:id. The provided
// subset of fields is merged verbatim; patches are not validated.
func PatchSubmission(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusNotFound, "Submission not found")
		}
		var in service.PatchInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid request body")
		}

		sub, err := svc.Patch(c.UserContext(), id, in)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Submission not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		return writeData(c, fiber.StatusOK, "Submission updated partially", sub)
	}
}

// DeleteSubmission handles DELETE /api/submissions/:id and returns the
// removed record.
func DeleteSubmission(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return writeError(c, fiber.StatusNotFound, "Submission not found")
		}
		sub, err := svc.Delete(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Submission not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		return writeData(c, fiber.StatusOK, "Submission deleted successfully", sub)
	}
}

// BulkDeleteSubmissions handles POST /api/submissions/bulk-delete.
// Unknown ids are skipped; the response carries how many records were
// actually removed.
func BulkDeleteSubmissions(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			IDs []int64 `json:"ids"`
		}
		if err := c.BodyParser(&body); err != nil || len(body.IDs) == 0 {
			return writeError(c, fiber.StatusBadRequest, "Invalid or empty IDs array")
		}

		count, err := svc.BulkDelete(c.UserContext(), body.IDs)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		return c.JSON(fiber.Map{
			"success":      true,
			"message":      strconv.Itoa(count) + " submission(s) deleted successfully",
			"deletedCount": count,
		})
	}
}

// GetStats handles GET /api/stats.
func GetStats(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		return writeData(c, fiber.StatusOK, "", stats)
	}
}

// ExportSubmissions handles POST /api/submissions/export: a CSV
// snapshot of the full store written to object storage.
func ExportSubmissions(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Export(c.UserContext())
		if err != nil {
			if errors.Is(err, service.ErrExportUnavailable) {
				return writeError(c, fiber.StatusServiceUnavailable, "Export storage is not configured")
			}
			return writeError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		return writeData(c, fiber.StatusOK, "Export completed", res)
	}
}
