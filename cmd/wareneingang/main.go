package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"wareneingang/internal"
	"wareneingang/internal/catalog"
	"wareneingang/internal/config"
	"wareneingang/internal/connectors"
	gmailconnector "wareneingang/internal/connectors/gmail"
	imapconnector "wareneingang/internal/connectors/imap"
	"wareneingang/internal/listener"
	"wareneingang/internal/pipeline"
	"wareneingang/internal/storage"
	"wareneingang/internal/util"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log, err := zap.NewProduction()
	if err != nil {
		log = zap.NewNop()
	}
	defer func() { _ = log.Sync() }()

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "catalog:sync":
		svc := catalog.NewSyncService(db, cfg)
		count, err := svc.InitialSync(context.Background())
		must(err)
		fmt.Printf("catalog sync complete: %d materials\n", count)
	case "catalog:delta":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		mode := fs.String("mode", "", "price|stock|day")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*mode) == "" {
			must(fmt.Errorf("--mode is required"))
		}
		svc := catalog.NewSyncService(db, cfg)
		count, err := svc.IncrementalSync(context.Background(), *mode)
		must(err)
		fmt.Printf("catalog delta complete mode=%s materials=%d\n", *mode, count)
	case "orders:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "work-order JSON export")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		svc := catalog.NewSyncService(db, cfg)
		count, err := svc.ImportWorkOrders(*file)
		must(err)
		fmt.Printf("imported %d work orders\n", count)
	case "parse":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "file path, or raw text for receipt/table")
		inType := fs.String("type", "receipt", "receipt|table|html|xlsx|pdf")
		supplierHint := fs.String("supplier", "", "supplier id for table inputs")
		resolve := fs.Bool("resolve", false, "resolve items against the catalog")
		_ = fs.Parse(os.Args[2:])
		if *input == "" {
			must(fmt.Errorf("--input is required"))
		}

		doc, err := pipeline.ExtractDocumentFromInput(*inType, *input, *supplierHint)
		must(err)

		if !*resolve {
			printJSON(doc)
			return
		}
		materials, err := db.ListMaterials()
		must(err)
		resolved := pipeline.NewResolver(cfg, materials).Resolve(doc.Items)
		printJSON(struct {
			Document internal.ParsedDocument
			Resolved []internal.ResolvedItem
		}{doc, resolved})
	case "ingest":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "file path, or raw text for receipt/table")
		inType := fs.String("type", "receipt", "receipt|table|html|xlsx|pdf")
		supplierHint := fs.String("supplier", "", "supplier id for table inputs")
		workOrder := fs.Int("workOrderId", 0, "attach the receipt to a work order")
		_ = fs.Parse(os.Args[2:])
		if *input == "" {
			must(fmt.Errorf("--input is required"))
		}

		doc, err := pipeline.ExtractDocumentFromInput(*inType, *input, *supplierHint)
		must(err)
		materials, err := db.ListMaterials()
		must(err)
		resolved := pipeline.NewResolver(cfg, materials).Resolve(doc.Items)

		var workOrderID *int
		if *workOrder > 0 {
			workOrderID = util.IntPtr(*workOrder)
		}
		orchestrator := pipeline.NewOrchestrator(db.Catalog(), db.Receipts(), log)
		receipt, err := orchestrator.Ingest(doc, resolved, workOrderID)
		must(err)
		printJSON(receipt)

		orders, err := db.Orders().GetOpenOrders([]internal.WorkOrderStatus{
			internal.OrderPlanned, internal.OrderMaterialOrdered, internal.OrderInProgress,
		})
		must(err)
		if suggestions := pipeline.SuggestWorkOrders(resolved, orders); len(suggestions) > 0 {
			fmt.Println(pipeline.SuggestionsJSON(suggestions))
		}
	case "mail:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", "imap", "gmail|imap")
		label := fs.String("label", "INBOX", "mailbox/label")
		max := fs.Int("max", 50, "max messages")
		_ = fs.Parse(os.Args[2:])
		conn, err := makeConnector(cfg, *provider)
		must(err)
		fetch := connectors.NewFetchService(db, cfg.RawMailDir, conn, log)
		result, err := fetch.FetchAndStore(*label, *max)
		must(err)
		fmt.Printf("mail fetch done provider=%s fetched=%d stored=%d new=%d\n", *provider, result.Fetched, result.Stored, result.New)
	case "mail:process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", "imap", "gmail|imap")
		messageID := fs.String("messageId", "", "specific message-id")
		batch := fs.Int("batch", 20, "batch size")
		_ = fs.Parse(os.Args[2:])
		processor := pipeline.NewProcessingService(db, cfg, log)
		if strings.TrimSpace(*messageID) != "" {
			res, err := processor.ProcessByProviderMessageID(*provider, *messageID)
			must(err)
			fmt.Printf("processed document id=%d lines=%d accepted=%d\n", res.DocumentID, res.Lines, res.Accepted)
			if len(res.Suggestions) > 0 {
				fmt.Println(pipeline.SuggestionsJSON(res.Suggestions))
			}
			return
		}
		processedDocs, processedLines, err := processor.ProcessPending(*batch, *provider)
		must(err)
		fmt.Printf("processed pending documents=%d lines=%d\n", processedDocs, processedLines)
	case "mail:listen":
		s := listener.NewService(db, cfg, log)
		must(s.Run(context.Background()))
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		documentID := fs.Int("documentId", 0, "internal document id")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *documentID == 0 || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--documentId and --out are required"))
		}
		rows, err := db.GetExportRows(*documentID)
		must(err)
		if len(rows) == 0 {
			must(fmt.Errorf("no export rows for documentId=%d", *documentID))
		}
		must(pipeline.ExportRowsToXLSX(rows, nil, *out))
		fmt.Printf("exported %d rows to %s\n", len(rows), *out)
	default:
		usage()
		os.Exit(1)
	}
}

func makeConnector(cfg config.Config, provider string) (connectors.MailConnector, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gmail":
		return gmailconnector.NewConnector(cfg)
	case "imap":
		return imapconnector.NewConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func printJSON(v any) {
	blob, err := json.MarshalIndent(v, "", "  ")
	must(err)
	fmt.Println(string(blob))
}

func usage() {
	fmt.Println("usage: wareneingang <command>")
	fmt.Println("commands:")
	fmt.Println("  catalog:sync")
	fmt.Println("  catalog:delta --mode=price|stock|day")
	fmt.Println("  orders:import --file=./orders.json")
	fmt.Println("  parse --input=... --type=receipt|table|html|xlsx|pdf [--supplier=...] [--resolve]")
	fmt.Println("  ingest --input=... --type=receipt|table|html|xlsx|pdf [--supplier=...] [--workOrderId=1]")
	fmt.Println("  mail:fetch --provider=gmail|imap --label=INBOX --max=50")
	fmt.Println("  mail:process --provider=gmail|imap [--messageId=...] [--batch=20]")
	fmt.Println("  mail:listen")
	fmt.Println("  export:xlsx --documentId=1 --out=./out/result.xlsx")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
