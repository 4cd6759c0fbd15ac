package pipeline

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wareneingang/internal"
	"wareneingang/internal/config"
	"wareneingang/internal/storage"
	"wareneingang/internal/util"
)

// ProcessingService runs the full pass over a stored mail: extract every
// parseable part, resolve the items against the local catalog, rank open
// work orders and persist the result as document lines.
type ProcessingService struct {
	db  *storage.DB
	cfg config.Config
	log *zap.Logger
}

func NewProcessingService(db *storage.DB, cfg config.Config, log *zap.Logger) *ProcessingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProcessingService{db: db, cfg: cfg, log: log}
}

type ProcessResult struct {
	DocumentID  int
	Lines       int
	Accepted    int
	Suggestions []internal.JobSuggestion
}

func (s *ProcessingService) ProcessByProviderMessageID(provider, messageID string) (ProcessResult, error) {
	doc, err := s.db.MustDocumentByProviderMessageID(provider, messageID)
	if err != nil {
		return ProcessResult{}, err
	}
	return s.ProcessDocument(doc)
}

func (s *ProcessingService) ProcessPending(limit int, provider string) (int, int, error) {
	pending, err := s.db.ListDocumentsByStatus("fetched", limit)
	if err != nil {
		return 0, 0, err
	}
	processedDocs := 0
	processedLines := 0
	for _, row := range pending {
		if provider != "" && row.Provider != provider {
			continue
		}
		res, err := s.ProcessDocument(row)
		if err != nil {
			return processedDocs, processedLines, err
		}
		processedDocs++
		processedLines += res.Lines
	}
	return processedDocs, processedLines, nil
}

func (s *ProcessingService) ProcessDocument(row internal.DocumentRow) (ProcessResult, error) {
	start := time.Now()
	raw, err := os.ReadFile(row.RawRef)
	if err != nil {
		return ProcessResult{}, err
	}

	docs, content, err := ExtractDocumentsFromMailRaw(raw)
	if err != nil {
		return ProcessResult{}, err
	}

	detect := DetectSupplierDocument(util.FirstNonEmpty(content.Subject, row.Subject), content.Text, content.HTML, content.AttachmentNames)
	if err := s.db.ClearDocumentLines(row.ID); err != nil {
		return ProcessResult{}, err
	}

	if !detect.IsSupplierDoc {
		s.log.Info("document skipped",
			zap.Int("documentId", row.ID),
			zap.Float64("score", detect.Score))
		_ = s.db.UpdateDocumentStatus(row.ID, "skipped")
		_ = s.db.InsertRun(uuid.NewString(), row.ID,
			map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())},
			map[string]int{"lines": 0, "accepted": 0})
		return ProcessResult{DocumentID: row.ID, Lines: 0}, nil
	}

	materials, err := s.db.ListMaterials()
	if err != nil {
		return ProcessResult{}, err
	}
	resolver := NewResolver(s.cfg, materials)

	allResolved := []internal.ResolvedItem{}
	lineNo := 0
	accepted := 0
	for _, sd := range docs {
		resolved := resolver.Resolve(sd.Document.Items)
		for _, ri := range resolved {
			lineNo++
			if _, err := s.db.InsertDocumentLine(row.ID, lineNo, string(sd.Source), sd.Origin, ri); err != nil {
				return ProcessResult{}, err
			}
			if ri.Match != nil {
				accepted++
			}
		}
		allResolved = append(allResolved, resolved...)
	}

	orders, err := s.db.ListWorkOrdersByStatus([]internal.WorkOrderStatus{
		internal.OrderPlanned, internal.OrderMaterialOrdered, internal.OrderInProgress,
	})
	if err != nil {
		return ProcessResult{}, err
	}
	suggestions := SuggestWorkOrders(allResolved, orders)

	if err := s.db.UpdateDocumentStatus(row.ID, "processed"); err != nil {
		return ProcessResult{}, err
	}
	_ = s.db.InsertRun(uuid.NewString(), row.ID,
		map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())},
		map[string]int{"lines": lineNo, "accepted": accepted})

	s.log.Info("document processed",
		zap.Int("documentId", row.ID),
		zap.Int("lines", lineNo),
		zap.Int("accepted", accepted),
		zap.Int("orderSuggestions", len(suggestions)))

	return ProcessResult{DocumentID: row.ID, Lines: lineNo, Accepted: accepted, Suggestions: suggestions}, nil
}

// IngestDocument applies the best parse of a stored mail to stock. The
// caller decides when a processed document is trustworthy enough to book.
func (s *ProcessingService) IngestDocument(row internal.DocumentRow, workOrderID *int) (internal.GoodsReceipt, error) {
	raw, err := os.ReadFile(row.RawRef)
	if err != nil {
		return internal.GoodsReceipt{}, err
	}

	docs, _, err := ExtractDocumentsFromMailRaw(raw)
	if err != nil {
		return internal.GoodsReceipt{}, err
	}
	if len(docs) == 0 {
		return internal.GoodsReceipt{}, ErrNoParseableContent
	}

	best := docs[0]
	for _, sd := range docs[1:] {
		if len(sd.Document.Items) > len(best.Document.Items) {
			best = sd
		}
	}

	materials, err := s.db.ListMaterials()
	if err != nil {
		return internal.GoodsReceipt{}, err
	}
	resolved := NewResolver(s.cfg, materials).Resolve(best.Document.Items)

	orchestrator := NewOrchestrator(s.db.Catalog(), s.db.Receipts(), s.log)
	return orchestrator.Ingest(best.Document, resolved, workOrderID)
}

// SuggestionsJSON renders work-order suggestions for CLI output.
func SuggestionsJSON(suggestions []internal.JobSuggestion) string {
	b, err := json.MarshalIndent(suggestions, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(b)
}
