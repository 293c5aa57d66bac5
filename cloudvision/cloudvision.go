// Package cloudvision implements hotdog.Labeler on top of the Google Cloud
// Vision label detection API.
package cloudvision

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"

	"github.com/anatolykoptev/go-hotdog"
)

// DefaultMaxResults is the number of labels requested per image.
const DefaultMaxResults = 10

// labelDetection is the Vision feature type for image labeling.
const labelDetection = "LABEL_DETECTION"

// Labeler sends images to Cloud Vision and returns their labels.
type Labeler struct {
	svc        *vision.Service
	maxResults int64
}

var _ hotdog.Labeler = (*Labeler)(nil)

// New creates a Labeler. Authentication and endpoint come from opts,
// e.g. option.WithAPIKey or option.WithCredentialsFile.
// maxResults <= 0 selects DefaultMaxResults.
func New(ctx context.Context, maxResults int, opts ...option.ClientOption) (*Labeler, error) {
	svc, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cloudvision: new service: %w", err)
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Labeler{svc: svc, maxResults: int64(maxResults)}, nil
}

// Label annotates one image. Labels are returned in the order the service
// ranks them (highest score first) and their text is passed through as is.
// An image with no detected labels yields an empty slice and no error.
func (l *Labeler) Label(ctx context.Context, img hotdog.ImageInput) ([]hotdog.Label, error) {
	if len(img.Data) == 0 {
		return nil, errors.New("cloudvision: empty image")
	}

	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image: &vision.Image{Content: hotdog.EncodeBase64(img.Data)},
			Features: []*vision.Feature{{
				Type:       labelDetection,
				MaxResults: l.maxResults,
			}},
		}},
	}

	resp, err := l.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("cloudvision: annotate: %w", err)
	}
	if len(resp.Responses) == 0 {
		return []hotdog.Label{}, nil
	}

	r := resp.Responses[0]
	if r.Error != nil && r.Error.Code != 0 {
		return nil, fmt.Errorf("cloudvision: annotate: code %d: %s", r.Error.Code, r.Error.Message)
	}

	labels := make([]hotdog.Label, 0, len(r.LabelAnnotations))
	for _, a := range r.LabelAnnotations {
		if a == nil || a.Description == "" {
			continue
		}
		labels = append(labels, hotdog.Label{Name: a.Description, Confidence: a.Score})
	}
	return labels, nil
}
