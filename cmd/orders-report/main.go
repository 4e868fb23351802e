package main

import (
	"context"
	"flag"
	"io"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/logx"

	"github.com/olekukonko/tablewriter"
)

func main() {
	var (
		limit   = flag.Int("limit", 0, "print at most this many orders (0 prints all)")
		width   = flag.Int("width", 32, "truncate text columns to this many characters")
		timeout = flag.Duration("timeout", 30*time.Second, "deadline for the database query")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load configuration")
	}
	logx.Init(logx.Options{Production: cfg.Env.IsProduction(), Level: cfg.LogLevel, Output: os.Stderr})

	db, err := database.Open(cfg.Database)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	orders, err := repositories.NewGORMOrderRepository(db).GetAll(ctx)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to fetch orders")
	}
	if *limit > 0 && len(orders) > *limit {
		orders = orders[:*limit]
	}

	if err := renderOrders(os.Stdout, orders, *width); err != nil {
		logx.Fatal().Err(err).Msg("failed to render orders")
	}
	logx.Info().Int("orders", len(orders)).Msg("report done")
}

// renderOrders writes one row per order, in the given order.
func renderOrders(w io.Writer, orders []models.Order, width int) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Date", "Customer", "Phone", "Product", "Price", "Address", "Payment")
	for _, o := range orders {
		row := []string{
			strconv.FormatUint(uint64(o.ID), 10),
			o.OrderDate.Format("2006-01-02 15:04"),
			cell(o.UserName, width),
			cell(o.Phone, width),
			cell(o.ProductName, width),
			o.Price.StringFixed(2),
			cell(o.Address, width),
			cell(o.PaymentMethod, width),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func cell(s *string, width int) string {
	if s == nil {
		return "-"
	}
	return truncateText(*s, width)
}

func truncateText(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "…"
}
