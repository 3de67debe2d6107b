package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocateCache một record cache tra cứu trong MongoDB. Fingerprint sinh từ
// query đã chuẩn hóa + phiên bản gazetteer, nên đổi dataset là key đổi theo.
type LocateCache struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Fingerprint      string             `bson:"fingerprint" json:"fingerprint"`
	RawAddress       string             `bson:"raw_address" json:"raw_address"`
	Normalized       string             `bson:"normalized" json:"normalized"`
	Result           LocateResult       `bson:"result" json:"result"`
	Source           SearchSource       `bson:"source" json:"source"`
	GazetteerVersion string             `bson:"gazetteer_version" json:"gazetteer_version"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	LastAccessed     time.Time          `bson:"last_accessed" json:"last_accessed"`
	AccessCount      int                `bson:"access_count" json:"access_count"`
}

// NewLocateCache tạo mới một LocateCache
func NewLocateCache(fingerprint, rawAddress, normalized string, result LocateResult, gazetteerVersion string) *LocateCache {
	return &LocateCache{
		Fingerprint:      fingerprint,
		RawAddress:       rawAddress,
		Normalized:       normalized,
		Result:           result,
		Source:           result.Source,
		GazetteerVersion: gazetteerVersion,
		CreatedAt:        time.Now(),
		LastAccessed:     time.Now(),
		AccessCount:      1,
	}
}

// IsValidGazetteerVersion record còn dùng được với dataset hiện tại không.
func (lc *LocateCache) IsValidGazetteerVersion(currentVersion string) bool {
	return lc.GazetteerVersion == currentVersion
}
