package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Image is an uploaded photo.
type Image struct {
	Ref    string
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// SaveImage stores an uploaded photo and returns its reference.
func SaveImage(ctx context.Context, db *sql.DB, img Image, uploadedBy string) (string, error) {
	ref := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO images (id, data, mime, width, height, uploaded_by) VALUES (?, ?, ?, ?, ?, ?)`,
		ref, img.Data, img.MIME, img.Width, img.Height, uploadedBy,
	)
	if err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}
	return ref, nil
}

// GetImage returns a stored photo, or nil if the reference is unknown.
func GetImage(ctx context.Context, db *sql.DB, ref string) (*Image, error) {
	img := &Image{Ref: ref}
	err := db.QueryRowContext(ctx,
		`SELECT data, mime, width, height FROM images WHERE id = ?`, ref,
	).Scan(&img.Data, &img.MIME, &img.Width, &img.Height)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting image: %w", err)
	}
	return img, nil
}
