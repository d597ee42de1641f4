package models

import "github.com/uptrace/bun"

type Element struct {
	bun.BaseModel `bun:"table:elements,alias:e"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull,unique"`
}
