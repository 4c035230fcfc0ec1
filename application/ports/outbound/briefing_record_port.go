package outbound

import "context"

type BriefingRecord struct {
	BriefingID string
	VideoKey   string
	Duration   float64
	SlideCount int
}

// BriefingRecordPort persists the metadata of a finished run.
type BriefingRecordPort interface {
	Save(ctx context.Context, record BriefingRecord) error
}
