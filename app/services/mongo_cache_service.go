package services

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/branch-locator/app/models"
)

// MongoCacheService cache persistent trên MongoDB với LRU in-memory phía
// trước. Mongo giữ lịch sử tra cứu qua restart, LRU chặn các query lặp lại
// trong phiên.
type MongoCacheService struct {
	collection       *mongo.Collection
	l1Cache          *lru.Cache[string, *models.LocateResult]
	gazetteerVersion string
	logger           *zap.Logger

	totalHits int64
	totalMiss int64
}

// NewMongoCacheService tạo mới MongoCacheService
func NewMongoCacheService(db *mongo.Database, l1Size int, gazetteerVersion string, logger *zap.Logger) (*MongoCacheService, error) {
	l1Cache, err := lru.New[string, *models.LocateResult](l1Size)
	if err != nil {
		return nil, fmt.Errorf("không thể tạo LRU cache: %w", err)
	}

	collection := db.Collection("locate_cache")

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "fingerprint", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{bson.E{Key: "gazetteer_version", Value: 1}},
		},
		{
			Keys: bson.D{bson.E{Key: "last_accessed", Value: 1}},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("Không thể tạo indexes cho locate_cache", zap.Error(err))
	}

	return &MongoCacheService{
		collection:       collection,
		l1Cache:          l1Cache,
		gazetteerVersion: gazetteerVersion,
		logger:           logger,
	}, nil
}

// Get lấy kết quả từ cache (L1 → MongoDB)
func (mcs *MongoCacheService) Get(ctx context.Context, key string) (*models.LocateResult, bool, error) {
	if result, found := mcs.l1Cache.Get(key); found {
		mcs.totalHits++
		return result, true, nil
	}

	var entry models.LocateCache
	err := mcs.collection.FindOne(ctx, bson.M{"fingerprint": key}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			mcs.totalMiss++
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("lỗi query MongoDB cache: %w", err)
	}

	// Record thuộc phiên bản dataset cũ coi như miss
	if !entry.IsValidGazetteerVersion(mcs.gazetteerVersion) {
		mcs.totalMiss++
		return nil, false, nil
	}

	mcs.totalHits++

	go mcs.updateAccessStats(entry.ID)
	mcs.l1Cache.Add(key, &entry.Result)

	mcs.logger.Debug("MongoDB cache hit", zap.String("fingerprint", key))
	return &entry.Result, true, nil
}

// Set lưu kết quả vào cache (L1 + MongoDB)
func (mcs *MongoCacheService) Set(ctx context.Context, key string, result *models.LocateResult) error {
	mcs.l1Cache.Add(key, result)

	entry := models.NewLocateCache(key, result.CustomerAddress, "", *result, mcs.gazetteerVersion)

	opts := options.Replace().SetUpsert(true)
	if _, err := mcs.collection.ReplaceOne(ctx, bson.M{"fingerprint": key}, entry, opts); err != nil {
		mcs.logger.Error("Lỗi lưu vào MongoDB cache", zap.Error(err), zap.String("fingerprint", key))
		return fmt.Errorf("lỗi lưu vào MongoDB cache: %w", err)
	}

	return nil
}

// Delete xóa record khỏi cache
func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	mcs.l1Cache.Remove(key)

	if _, err := mcs.collection.DeleteOne(ctx, bson.M{"fingerprint": key}); err != nil {
		return fmt.Errorf("lỗi xóa khỏi MongoDB cache: %w", err)
	}
	return nil
}

// Clear xóa tất cả cache
func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	mcs.l1Cache.Purge()

	if _, err := mcs.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("lỗi clear MongoDB cache: %w", err)
	}

	mcs.totalHits = 0
	mcs.totalMiss = 0
	return nil
}

// InvalidateByGazetteerVersion xóa các record không thuộc phiên bản hiện tại
func (mcs *MongoCacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	mcs.l1Cache.Purge()
	mcs.gazetteerVersion = gazetteerVersion

	filter := bson.M{"gazetteer_version": bson.M{"$ne": gazetteerVersion}}
	result, err := mcs.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("lỗi invalidate cache theo gazetteer version: %w", err)
	}

	mcs.logger.Info("Đã invalidate cache",
		zap.String("gazetteer_version", gazetteerVersion),
		zap.Int64("deleted_count", result.DeletedCount))
	return nil
}

// GetStats lấy thống kê cache
func (mcs *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	mongoCount, err := mcs.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("lỗi đếm documents trong MongoDB cache: %w", err)
	}

	total := mcs.totalHits + mcs.totalMiss
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(mcs.totalHits) / float64(total)
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  mcs.totalHits,
		TotalMiss:  mcs.totalMiss,
		TotalItems: mongoCount,
	}, nil
}

// Close kết nối MongoDB do caller quản lý.
func (mcs *MongoCacheService) Close() error {
	return nil
}

// updateAccessStats cập nhật thống kê truy cập (async)
func (mcs *MongoCacheService) updateAccessStats(id primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{"last_accessed": time.Now()},
		"$inc": bson.M{"access_count": 1},
	}
	if _, err := mcs.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		mcs.logger.Warn("Lỗi update access stats", zap.Error(err))
	}
}

// WarmUp nạp các record được hỏi nhiều nhất từ MongoDB vào L1.
func (mcs *MongoCacheService) WarmUp(ctx context.Context, limit int) error {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "access_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := mcs.collection.Find(ctx, bson.M{"gazetteer_version": mcs.gazetteerVersion}, opts)
	if err != nil {
		return fmt.Errorf("lỗi warm up cache: %w", err)
	}
	defer cursor.Close(ctx)

	count := 0
	for cursor.Next(ctx) {
		var entry models.LocateCache
		if err := cursor.Decode(&entry); err != nil {
			mcs.logger.Warn("Lỗi decode cache entry trong warm up", zap.Error(err))
			continue
		}
		mcs.l1Cache.Add(entry.Fingerprint, &entry.Result)
		count++
	}

	mcs.logger.Info("Cache warm up hoàn thành",
		zap.Int("loaded_items", count),
		zap.Int("l1_size", mcs.l1Cache.Len()))
	return nil
}
