package entity

import "time"

// GeneratedCopy 单条生成的营销文案
// ID/RequestID/GeneratedAt 由归一化层分配，永远不信任模型输出中的同名字段
type GeneratedCopy struct {
	ID             string
	Content        string
	Platform       Platform
	Hashtags       []string
	CharacterCount int
	Model          string
	GeneratedAt    time.Time
	RequestID      string
}
