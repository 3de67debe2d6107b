package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/branch-locator/app/config"
	"github.com/branch-locator/app/services"
	"github.com/branch-locator/internal/search"
	"go.uber.org/zap"
)

// Seed tool: nạp danh sách kho (seed nội bộ + sheet store nếu có)
// vào Meilisearch index cho màn hình tìm kiếm admin.
func main() {
	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal("Không thể khởi tạo logger:", err)
	}
	defer logger.Sync()

	index, err := search.NewBranchIndex(search.IndexConfig{
		Host:      cfg.Meili.URL,
		APIKey:    cfg.Meili.MasterKey,
		IndexName: cfg.Meili.IndexName,
		Timeout:   cfg.Meili.Timeout,
	}, logger)
	if err != nil {
		log.Fatal("Không thể kết nối Meilisearch:", err)
	}

	fmt.Println("Đang cấu hình Meilisearch index settings...")
	if err := index.EnsureSettings(); err != nil {
		log.Fatal("Lỗi cập nhật settings:", err)
	}

	var store *services.SheetStore
	if cfg.Sheet.URL != "" {
		store = services.NewSheetStore(cfg.Sheet.URL, cfg.Sheet.Timeout, logger)
	}

	branchService := services.NewBranchService(store, index, logger)
	if err := branchService.LoadSeed(); err != nil {
		log.Fatal("Lỗi nạp seed data:", err)
	}

	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		fmt.Println("Đang lấy danh sách kho từ sheet store...")
		if err := branchService.RefreshFromStore(ctx); err != nil {
			log.Printf("Lỗi refresh từ sheet store, dùng seed nội bộ: %v", err)
		}
	}

	branches := branchService.All()
	fmt.Printf("Đang seed %d kho vào Meilisearch...\n", len(branches))

	if err := branchService.ReindexAll(); err != nil {
		log.Fatal("Lỗi seed dữ liệu:", err)
	}

	fmt.Printf("Hoàn thành! Đã seed %d kho vào Meilisearch\n", len(branches))
}
