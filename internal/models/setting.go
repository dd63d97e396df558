package models

// Setting is a process-wide key/value pair. Settings carry no session tag.
type Setting struct {
	Key   string `gorm:"primaryKey;size:64" json:"key"`
	Value string `json:"value"`
}
