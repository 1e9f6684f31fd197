package application

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brintopos/brintopos/internal/domain"
	"github.com/brintopos/brintopos/internal/domain/catalog"
)

// DashboardService backs the admin screens: menu management, invoice
// history and the revenue summary.
type DashboardService struct {
	rt      *Runtime
	archive domain.SummaryArchive
	log     logrus.FieldLogger
}

func NewDashboardService(rt *Runtime, archive domain.SummaryArchive) *DashboardService {
	return &DashboardService{
		rt:      rt,
		archive: archive,
		log:     rt.Log.WithField("component", "dashboard"),
	}
}

// Authorize checks the admin gate.
func (s *DashboardService) Authorize(credential string) error {
	return s.rt.Gates.Admin.Check(credential)
}

func (s *DashboardService) Menu(category domain.Category) []domain.MenuItem {
	return s.rt.Catalog.List(category)
}

func (s *DashboardService) Categories() []domain.Category {
	return catalog.Categories()
}

func (s *DashboardService) AddMenuItem(item domain.MenuItem) (domain.MenuItem, error) {
	added, err := s.rt.Catalog.Add(item)
	if err != nil {
		return domain.MenuItem{}, err
	}
	s.log.WithFields(logrus.Fields{"item_id": added.ID, "name": added.Name}).Info("menu item added")
	return added, nil
}

// UpdateMenuItem edits a menu item. Orders already holding the item keep
// the price they were rung up at.
func (s *DashboardService) UpdateMenuItem(item domain.MenuItem) (domain.MenuItem, error) {
	updated, err := s.rt.Catalog.Update(item)
	if err != nil {
		return domain.MenuItem{}, err
	}
	s.log.WithField("item_id", updated.ID).Info("menu item updated")
	return updated, nil
}

func (s *DashboardService) RemoveMenuItem(id string) bool {
	removed := s.rt.Catalog.Remove(id)
	if removed {
		s.log.WithField("item_id", id).Info("menu item removed")
	}
	return removed
}

func (s *DashboardService) Invoices() []domain.Invoice {
	return s.rt.Ledger.List()
}

func (s *DashboardService) Invoice(id string) (domain.Invoice, error) {
	return s.rt.Ledger.Get(id)
}

func (s *DashboardService) UpdateInvoice(id string, patch domain.InvoicePatch) (domain.Invoice, error) {
	inv, err := s.rt.Ledger.Update(id, patch)
	if err != nil {
		return domain.Invoice{}, err
	}
	s.log.WithField("invoice_id", id).Info("invoice amended")
	return inv, nil
}

// VoidInvoice voids an invoice behind the void gate.
func (s *DashboardService) VoidInvoice(id, credential, reason string) (domain.Invoice, error) {
	inv, err := s.rt.Ledger.Void(id, credential, reason)
	if err != nil {
		s.log.WithError(err).WithField("invoice_id", id).Warn("void rejected")
		return domain.Invoice{}, err
	}
	s.log.WithFields(logrus.Fields{"invoice_id": id, "reason": inv.VoidReason}).Info("invoice voided")
	return inv, nil
}

func (s *DashboardService) Summary() domain.LedgerSummary {
	return s.rt.Ledger.Summary()
}

// ArchiveSummary appends the current summary to the report archive,
// stamped with the config revision it was produced under.
func (s *DashboardService) ArchiveSummary(projectPath, revision string) (domain.SummaryEntry, error) {
	entry := domain.SummaryEntry{
		Timestamp:      s.rt.Clock.Now().Format(time.RFC3339),
		Till:           s.rt.Config.Till.Node,
		ConfigRevision: revision,
		Summary:        s.Summary(),
	}
	if err := s.archive.Save(projectPath, entry); err != nil {
		return domain.SummaryEntry{}, fmt.Errorf("archiving summary: %w", err)
	}
	return entry, nil
}

// ReportHistory lists archived summaries matching filter, oldest first.
func (s *DashboardService) ReportHistory(projectPath string, filter domain.ReportFilter) ([]domain.SummaryEntry, error) {
	if !filter.Since.IsZero() && !filter.Until.IsZero() && filter.Until.Before(filter.Since) {
		return nil, domain.NewValidationError("until", "%s is before %s",
			filter.Until.Format(domain.ReportDayLayout), filter.Since.Format(domain.ReportDayLayout))
	}
	entries, err := s.archive.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading report history: %w", err)
	}
	return filter.Apply(entries), nil
}
