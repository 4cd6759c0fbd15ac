package internal

// ParsedItem is one purchase line extracted from a receipt or a supplier
// export table. Quantity, UnitPrice and LineTotal are always filled: a
// missing unit price is derived from LineTotal/Quantity and a missing line
// total from UnitPrice*Quantity, both rounded to cents.
type ParsedItem struct {
	ArticleNumber *string
	Description   string
	Quantity      float64
	Unit          string
	UnitPrice     float64
	LineTotal     float64
}

// ParsedDocument is the best-effort result of one parse call. It is never
// an error: unreadable input yields an empty item list with the raw text
// preserved for manual entry.
type ParsedDocument struct {
	Supplier       *string
	Date           *string // ISO-8601
	DocumentNumber *string
	Items          []ParsedItem
	Total          float64
	Tax            float64
	RawText        string
}

type MaterialRecord struct {
	ID            int
	ArticleNumber *string
	Name          string
	Unit          string
	Price         float64
	Stock         float64
	UpdatedAt     *string
	RawJSON       string
}

type MatchSuggestion struct {
	MaterialID int     `json:"materialId"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ResolvedItem carries at most one accepted match plus up to three ranked
// suggestions for manual disambiguation.
type ResolvedItem struct {
	Item        ParsedItem
	Match       *MatchSuggestion
	Suggestions []MatchSuggestion
}

type WorkOrderStatus string

const (
	OrderPlanned         WorkOrderStatus = "planned"
	OrderMaterialOrdered WorkOrderStatus = "material-ordered"
	OrderInProgress      WorkOrderStatus = "in-progress"
	OrderDone            WorkOrderStatus = "done"
	OrderCancelled       WorkOrderStatus = "cancelled"
)

type BOMEntry struct {
	MaterialID  int
	Description string
	Quantity    float64
}

type OrderLine struct {
	Description string
	Quantity    float64
}

type WorkOrder struct {
	ID              int
	Label           string
	Status          WorkOrderStatus
	BillOfMaterials []BOMEntry
	LineItems       []OrderLine
}

type MatchedItemRef struct {
	LineNo     int    `json:"lineNo"`
	MaterialID *int   `json:"materialId,omitempty"`
	Via        string `json:"via"` // material | bom-description | order-line
}

type JobSuggestion struct {
	WorkOrderID  int              `json:"workOrderId"`
	Label        string           `json:"label"`
	Score        float64          `json:"score"`
	MatchedItems []MatchedItemRef `json:"matchedItems"`
}

type ReceiptLine struct {
	ParsedItem
	MaterialID   *int
	Confidence   float64
	StockUpdated bool
}

type StockUpdate struct {
	MaterialID    int
	Delta         float64
	PreviousStock float64
	NewStock      float64
}

type StockMovement struct {
	MaterialID    int
	Delta         float64
	PreviousStock float64
	NewStock      float64
	Source        string
	ReceiptID     string
	Note          string
}

// GoodsReceipt is the immutable record of one ingestion pass, handed to the
// receipt store for persistence.
type GoodsReceipt struct {
	ID             string
	Supplier       *string
	DocumentNumber *string
	Date           *string
	Items          []ReceiptLine
	Total          float64
	WorkOrderID    *int
	StockUpdates   []StockUpdate
	CreatedAt      string
}

type DocumentSource string

const (
	SourceOCRText       DocumentSource = "ocr_text"
	SourceMailText      DocumentSource = "mail_text"
	SourceMailHTMLTable DocumentSource = "mail_html_table"
	SourceCSV           DocumentSource = "csv"
	SourceXLSX          DocumentSource = "xlsx"
	SourcePDF           DocumentSource = "pdf"
)

// DocumentRow is one received supplier document (usually an e-mail) as
// tracked by the local store.
type DocumentRow struct {
	ID         int
	Provider   string
	MessageID  string
	Subject    string
	Sender     string
	ReceivedAt string
	Hash       string
	Status     string
	RawRef     string
}

type FetchedMailMessage struct {
	Provider   string
	MessageID  string
	Subject    string
	From       string
	ReceivedAt string
	Raw        []byte
}

// ResultExportRow is the flattened review shape written to XLSX.
type ResultExportRow struct {
	LineNo                int
	Source                string
	ArticleNumber         *string
	Description           string
	Quantity              float64
	Unit                  string
	UnitPrice             float64
	LineTotal             float64
	MaterialID            *int
	MaterialName          *string
	Confidence            float64
	Accepted              bool
	Suggestion2Name       *string
	Suggestion2Confidence *float64
}
