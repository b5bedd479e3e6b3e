package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/finsarthi/leads-api/internal/dto"
	"github.com/finsarthi/leads-api/internal/entity"
	"github.com/finsarthi/leads-api/internal/metrics"
	"github.com/finsarthi/leads-api/internal/repository"
)

// exportHeader is the fixed column layout consumed by the sales team's
// spreadsheet tooling. Do not reorder.
var exportHeader = []string{
	"Name", "Phone", "Email", "Insurance Type", "Category", "City", "State",
	"Status", "Priority", "Sum Assured", "Premium Budget", "Created At", "Updated At",
}

const exportPageSize = 100

// ExportService streams insurance leads as CSV.
type ExportService struct {
	repo    repository.InsuranceLeadsRepository
	metrics *metrics.Metrics
}

// NewExportService constructs an ExportService.
func NewExportService(repo repository.InsuranceLeadsRepository, m *metrics.Metrics) *ExportService {
	return &ExportService{repo: repo, metrics: m}
}

// Filename returns the download name for an export generated now.
func (s *ExportService) Filename(now time.Time) string {
	return fmt.Sprintf("insurance-leads-%s.csv", now.UTC().Format("2006-01-02"))
}

// WriteCSV writes the header and every lead matching the filter, paging
// through the repository so exports are not capped at one page.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer, filter dto.LeadListFilter) (int, error) {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}

	filter.PerPage = exportPageSize
	total := 0
	for page := 1; ; page++ {
		filter.Page = page
		leads, err := s.repo.List(ctx, filter)
		if err != nil {
			return total, err
		}
		for i := range leads {
			if err := writer.Write(exportRow(&leads[i])); err != nil {
				return total, fmt.Errorf("write csv row: %w", err)
			}
			total++
		}
		if len(leads) < exportPageSize {
			break
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return total, fmt.Errorf("flush csv: %w", err)
	}

	s.metrics.Exports.Inc()
	return total, nil
}

func exportRow(lead *entity.InsuranceLead) []string {
	return []string{
		lead.Name,
		lead.Phone,
		deref(lead.Email),
		lead.InsuranceType,
		deref(lead.Category),
		deref(lead.City),
		deref(lead.State),
		string(lead.Status),
		deref(lead.Priority),
		formatAmount(lead.SumAssured),
		formatAmount(lead.PremiumBudget),
		lead.CreatedAt.UTC().Format(time.RFC3339),
		lead.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatAmount(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
