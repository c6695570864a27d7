package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"regapi/internal/model"
	"regapi/internal/storage"
)

// ErrExportUnavailable is returned when no object storage backend is
// configured.
var ErrExportUnavailable = errors.New("object storage is not configured")

var exportHeader = []string{
	"id", "firstName", "lastName", "email", "phone", "age",
	"country", "gender", "interests", "bio", "createdAt", "updatedAt",
}

// Export writes a CSV snapshot of every submission to object storage
// and returns the object key, the exported row count, and a
// time-limited download URL when the backend supports presigning.
func (s *submissionService) Export(ctx context.Context) (*ExportResult, error) {
	if s.store == nil {
		return nil, ErrExportUnavailable
	}

	subs, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, sub := range subs {
		if err := w.Write(exportRow(sub)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	key := path.Join(s.exportPrefix, "submissions-"+time.Now().UTC().Format("20060102T150405Z")+".csv")
	if _, err := s.store.Put(ctx, key, &buf, storage.PutObjectOptions{
		Size:        int64(buf.Len()),
		ContentType: "text/csv",
	}); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	res := &ExportResult{Key: key, Count: len(subs)}
	if url, err := s.store.PresignGet(ctx, key, 15*time.Minute); err == nil {
		res.URL = url
	}
	return res, nil
}

func exportRow(sub model.Submission) []string {
	return []string{
		strconv.FormatInt(sub.ID, 10),
		sub.FirstName,
		sub.LastName,
		sub.Email,
		sub.Phone,
		strconv.Itoa(sub.Age),
		sub.Country,
		sub.Gender,
		strings.Join(sub.Interests, ";"),
		sub.Bio,
		sub.CreatedAt.Format(time.RFC3339),
		sub.UpdatedAt.Format(time.RFC3339),
	}
}
