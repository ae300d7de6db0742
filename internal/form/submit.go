package form

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"recipebox/internal/model"
)

// ErrNoTarget is returned when an edit session has no recipe id to update.
var ErrNoTarget = errors.New("edit session has no target recipe")

// ValidationError carries the messages that blocked a submit.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, " ")
}

// Gateway is the part of the API the form needs.
type Gateway interface {
	Create(ctx context.Context, p model.Payload) (int64, error)
	Update(ctx context.Context, id int64, p model.Payload) error
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// Result describes an accepted submit.
type Result struct {
	SessionID uint64
	Mode      model.FormMode
	RecipeID  int64 // created id in add mode, target id in edit mode
	Payload   model.Payload
}

// Submitter sends sessions to the API.
type Submitter struct {
	gateway Gateway
	origin  string
}

// NewSubmitter creates a submitter. origin absolutizes relative image URLs.
func NewSubmitter(gateway Gateway, origin string) *Submitter {
	return &Submitter{gateway: gateway, origin: origin}
}

// Submit validates s, uploads its pending image if any, and creates or
// updates the recipe. Validation failures return a *ValidationError and
// never reach the network.
func (sub *Submitter) Submit(ctx context.Context, s Session) (Result, error) {
	if errs := s.Validate(); len(errs) > 0 {
		return Result{}, &ValidationError{Messages: errs}
	}
	if s.Mode == model.FormEdit && s.TargetID == 0 {
		return Result{}, ErrNoTarget
	}

	var uploaded string
	if s.File != nil {
		url, err := sub.upload(ctx, *s.File)
		if err != nil {
			return Result{}, err
		}
		uploaded = url
	}

	payload := s.Payload(s.ResolveImage(uploaded), sub.origin)
	res := Result{SessionID: s.ID, Mode: s.Mode, Payload: payload}

	switch s.Mode {
	case model.FormEdit:
		if err := sub.gateway.Update(ctx, s.TargetID, payload); err != nil {
			return Result{}, err
		}
		res.RecipeID = s.TargetID
	default:
		id, err := sub.gateway.Create(ctx, payload)
		if err != nil {
			return Result{}, err
		}
		res.RecipeID = id
	}
	return res, nil
}

func (sub *Submitter) upload(ctx context.Context, f ImageFile) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("read image %s: %w", f.Name, err)
	}
	return sub.gateway.Upload(ctx, f.Name, http.DetectContentType(data), bytes.NewReader(data))
}
