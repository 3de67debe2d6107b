package models

import "time"

// SearchLog một lượt tra cứu, đẩy về store từ xa qua action log_search để
// team vận hành thống kê khu vực khách hỏi nhiều.
type SearchLog struct {
	Query      string       `json:"query" bson:"query"`
	BranchName string       `json:"branch_name,omitempty" bson:"branch_name,omitempty"`
	Source     SearchSource `json:"source,omitempty" bson:"source,omitempty"`
	Province   string       `json:"province,omitempty" bson:"province,omitempty"`
	Score      int          `json:"score,omitempty" bson:"score,omitempty"`
	Success    bool         `json:"success" bson:"success"`
	CreatedAt  time.Time    `json:"created_at" bson:"created_at"`
}
