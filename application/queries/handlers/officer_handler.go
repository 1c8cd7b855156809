package handlers

import (
	"context"
	"fmt"
	"strings"

	"careergraph/application/ports"
	"careergraph/application/queries"
	"careergraph/domain/core/entities"
	"careergraph/domain/core/valueobjects"

	"go.uber.org/zap"
)

// OfficerHandler answers Record Store queries
type OfficerHandler struct {
	officers ports.OfficerRepository
	logger   *zap.Logger
}

// NewOfficerHandler creates a new officer handler
func NewOfficerHandler(officers ports.OfficerRepository, logger *zap.Logger) *OfficerHandler {
	return &OfficerHandler{
		officers: officers,
		logger:   logger,
	}
}

// GetOfficer returns the detail view of one record, cleaned or not
func (h *OfficerHandler) GetOfficer(ctx context.Context, query queries.GetOfficerQuery) (*queries.OfficerDetail, error) {
	officer, err := h.officers.RecordByIdentity(ctx, query.IdentityNo)
	if err != nil {
		return nil, translateError(err, "officer")
	}

	return &queries.OfficerDetail{
		Officer: officer,
		Fields:  detailFields(officer),
	}, nil
}

// GetOfficerByName returns the detail view of the first officer with the name
func (h *OfficerHandler) GetOfficerByName(ctx context.Context, query queries.GetOfficerByNameQuery) (*queries.OfficerDetail, error) {
	officer, err := h.officers.ByName(ctx, query.Name)
	if err != nil {
		return nil, translateError(err, "officer")
	}

	return &queries.OfficerDetail{
		Officer: officer,
		Fields:  detailFields(officer),
	}, nil
}

// detailFields lists every present field other than the name
func detailFields(o *entities.Officer) []queries.DetailField {
	fields := []queries.DetailField{
		{Label: "Identity No", Value: o.IdentityNo},
	}
	if !o.AllotmentYear.IsMissing() {
		fields = append(fields, queries.DetailField{Label: valueobjects.AttributeAllotmentYear.Label(), Value: o.AllotmentYear.String()})
	}
	fields = append(fields,
		queries.DetailField{Label: valueobjects.AttributeDomicilePlace.Label(), Value: o.Domicile},
		queries.DetailField{Label: "Education Qualifications", Value: fmt.Sprintf("%d entries", len(o.Education))},
		queries.DetailField{Label: "Experience Details", Value: fmt.Sprintf("%d entries", len(o.Experience))},
	)
	return fields
}

// ListOfficers returns identity/name options of the cleaned officers in load order
func (h *OfficerHandler) ListOfficers(ctx context.Context, query queries.ListOfficersQuery) (*queries.ListOfficersResult, error) {
	officers, err := h.officers.Officers(ctx)
	if err != nil {
		return nil, translateError(err, "officers")
	}

	needle := strings.ToLower(strings.TrimSpace(query.Name))
	options := make([]queries.OfficerOption, 0, len(officers))
	for _, o := range officers {
		if needle != "" && !strings.Contains(strings.ToLower(o.Name), needle) {
			continue
		}
		options = append(options, queries.OfficerOption{
			IdentityNo: o.IdentityNo,
			Name:       o.Name,
			Label:      fmt.Sprintf("%s (%s)", o.Name, o.IdentityNo),
		})
	}

	start, end := query.Pagination.Bounds(len(options))
	return &queries.ListOfficersResult{
		Officers:   options[start:end],
		Pagination: query.Pagination.Info(len(options)),
	}, nil
}

// ListNames returns unique names in load order
func (h *OfficerHandler) ListNames(ctx context.Context, _ queries.ListNamesQuery) ([]string, error) {
	names, err := h.officers.Names(ctx)
	if err != nil {
		return nil, translateError(err, "names")
	}
	return names, nil
}

// DatasetReport returns the cleaning report
func (h *OfficerHandler) DatasetReport(ctx context.Context, _ queries.DatasetReportQuery) (*entities.CleaningReport, error) {
	report, err := h.officers.Report(ctx)
	if err != nil {
		return nil, translateError(err, "dataset")
	}
	return &report, nil
}
