package model

// StateKV holds one persisted JSON blob per named key.
type StateKV struct {
	Key       string `gorm:"column:key;type:text;primaryKey"`
	Value     string `gorm:"column:value;type:text;not null"`
	UpdatedAt string `gorm:"column:updated_at;type:text;not null"`
}

func (StateKV) TableName() string {
	return "app_state"
}
