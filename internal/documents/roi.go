// Package documents is the document-service external collaborator (§1
// out-of-scope interfaces, §4.8): it renders a property's ROI report as a
// PDF and publishes it to object storage, returning a reference the state
// machine and workers can attach to a BotResponse as document_ref.
package documents

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/gcs"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf/v2"
	"go.uber.org/zap"
)

// Service generates and publishes ROI reports. A nil Service is valid —
// callers skip attachment rather than fail the turn (§4.8: "if a document
// service is available").
type Service struct {
	bucket *gcs.Client
}

// NewService wraps a GCS client as the document service. Pass nil to run
// without report generation (the dashboard/document service is explicitly
// out of scope and may not be deployed in every environment).
func NewService(bucket *gcs.Client) *Service {
	if bucket == nil {
		return nil
	}
	return &Service{bucket: bucket}
}

// reportLinkTTL bounds how long a shared ROI report link stays valid;
// the bucket holding these reports is private, so every link handed to a
// lead is a signed, time-limited GET URL rather than a bare public one.
const reportLinkTTL = 24 * time.Hour

// GenerateROIReport renders a one-page PDF summarising p's investment
// case for lead, uploads it, and returns a signed URL a lead can open
// directly without bucket credentials.
func (s *Service) GenerateROIReport(ctx context.Context, tenant domain.Tenant, lead domain.Lead, p domain.Property) (string, error) {
	if s == nil {
		return "", nil
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, p.Title, "", 1, "", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	rows := [][2]string{
		{"Price", formatAED(p.Price)},
		{"Location", p.Location},
		{"Bedrooms", fmt.Sprintf("%d", p.Bedrooms)},
		{"Expected ROI", fmt.Sprintf("%.1f%%", p.ExpectedROI)},
		{"Golden Visa eligible", yesNo(p.GoldenVisaEligible)},
		{"Prepared for", lead.Name},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 8, row[0], "", 0, "", false, 0, "")
		pdf.CellFormat(0, 8, row[1], "", 1, "", false, 0, "")
	}

	pdf.SetFont("Arial", "I", 8)
	pdf.SetY(-15)
	pdf.CellFormat(0, 10, fmt.Sprintf("Generated on %s for %s", time.Now().Format("2006-01-02 15:04:05"), tenant.Name), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", fmt.Errorf("failed to render roi report: %w", err)
	}

	objectPath := fmt.Sprintf("roi-reports/%s/%s.pdf", tenant.ID, uuid.NewString())
	if _, err := s.bucket.Upload(ctx, objectPath, &buf); err != nil {
		logger.Base().Warn("roi report upload failed", zap.String("property_id", p.ID), zap.Error(err))
		return "", &domain.ErrTransientDependency{Dependency: "document_service", Err: err}
	}

	gcsURI := fmt.Sprintf("gs://%s/%s", s.bucket.BucketName(), objectPath)
	signedURL, err := s.bucket.GetPresignedURL(ctx, gcsURI, time.Now().Add(reportLinkTTL))
	if err != nil {
		logger.Base().Warn("roi report signing failed", zap.String("property_id", p.ID), zap.Error(err))
		return "", &domain.ErrTransientDependency{Dependency: "document_service", Err: err}
	}
	return signedURL, nil
}

func formatAED(v int64) string {
	return fmt.Sprintf("AED %d", v)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
