package services

import (
	"context"
)

// SiteConfigRepository defines persistence for accepted documents.
type SiteConfigRepository interface {
	Append(ctx context.Context, doc map[string]any) (int64, error)
}

// DocumentValidator is the schema gate in front of persistence.
type DocumentValidator interface {
	Validate(doc any) error
}

// SiteConfigService runs submissions through the validation gate and
// appends accepted documents.
type SiteConfigService struct {
	repo SiteConfigRepository
	gate DocumentValidator
}

func NewSiteConfigService(repo SiteConfigRepository, gate DocumentValidator) *SiteConfigService {
	return &SiteConfigService{repo: repo, gate: gate}
}

// Submit validates the document and, on success, appends it with a
// generated id. Schema violations come back as
// *schema.ValidationError from the gate.
func (s *SiteConfigService) Submit(ctx context.Context, doc map[string]any) (int64, error) {
	if err := s.gate.Validate(doc); err != nil {
		return 0, err
	}
	return s.repo.Append(ctx, doc)
}
