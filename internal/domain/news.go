package domain

import "context"

// News is one startup-news item, ingested externally and read-only here.
type News struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Source    string `json:"source"`
	Date      string `json:"date"`
	ISODate   string `json:"iso_date"`
	Snippet   string `json:"snippet"`
	Thumbnail string `json:"thumbnail"`
	Favicon   string `json:"favicon"`
}

type NewsPage struct {
	News   []News `json:"news"`
	Cursor string `json:"cursor,omitempty"`
}

type NewsRepository interface {
	List(ctx context.Context, cursor string, limit int) (*NewsPage, error)
}

type NewsUsecase interface {
	List(ctx context.Context, cursor string) (*NewsPage, error)
}
