package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-calcdash/components/dashboard"
)

// UploadInput carries an uploaded file. ID is filled by the command.
type UploadInput struct {
	FileName string
	Data     []byte
	ID       string
}

type uploadService interface {
	Upload(ctx context.Context, filename string, data []byte) (dashboard.Upload, error)
}

// UploadDatasetCommand stores a dataset upload for later dashboard runs.
type UploadDatasetCommand struct {
	service uploadService
}

// NewUploadDatasetCommand creates the command.
func NewUploadDatasetCommand(service uploadService) *UploadDatasetCommand {
	return &UploadDatasetCommand{service: service}
}

var _ gocommand.Commander[*UploadInput] = (*UploadDatasetCommand)(nil)

// Execute delegates to the dashboard service.
func (c *UploadDatasetCommand) Execute(ctx context.Context, msg *UploadInput) error {
	if c.service == nil {
		return errors.New("upload command requires service")
	}
	upload, err := c.service.Upload(ctx, msg.FileName, msg.Data)
	if err != nil {
		return err
	}
	msg.ID = upload.ID
	return nil
}
