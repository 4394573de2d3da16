package confluence

import "fmt"

const (
	statusCurrent         = "current"
	representationStorage = "storage"
)

type storageBody struct {
	Storage storageValue `json:"storage"`
}

type storageValue struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

func newStorageBody(value string) storageBody {
	return storageBody{Storage: storageValue{Value: value, Representation: representationStorage}}
}

type pageVersion struct {
	Number int `json:"number"`
}

// CreatePage creates a page through the v2 API.
type CreatePage struct {
	SpaceID string
	Title   string
	// Body is storage-format markup.
	Body string
}

func (CreatePage) Kind() Kind { return KindCreatePage }

func (p CreatePage) call() (call, error) {
	if err := require(KindCreatePage, "space id", p.SpaceID, "title", p.Title); err != nil {
		return call{}, err
	}

	body, err := encodeJSON(struct {
		SpaceID string      `json:"spaceId"`
		Status  string      `json:"status"`
		Title   string      `json:"title"`
		Body    storageBody `json:"body"`
	}{
		SpaceID: p.SpaceID,
		Status:  statusCurrent,
		Title:   p.Title,
		Body:    newStorageBody(p.Body),
	})
	if err != nil {
		return call{}, err
	}

	return call{version: V2, method: MethodPost, suffix: "pages", body: body}, nil
}

// UpdatePage replaces a page's title and body. Version is the new version
// number, one above the page's current version.
type UpdatePage struct {
	PageID  string
	Title   string
	Body    string
	Version int
}

func (UpdatePage) Kind() Kind { return KindUpdatePage }

func (p UpdatePage) call() (call, error) {
	if err := require(KindUpdatePage, "page id", p.PageID, "title", p.Title); err != nil {
		return call{}, err
	}
	if p.Version <= 0 {
		return call{}, fmt.Errorf("%w: %s requires version", ErrMissingField, KindUpdatePage)
	}

	body, err := encodeJSON(struct {
		ID      string      `json:"id"`
		Status  string      `json:"status"`
		Title   string      `json:"title"`
		Version pageVersion `json:"version"`
		Body    storageBody `json:"body"`
	}{
		ID:      p.PageID,
		Status:  statusCurrent,
		Title:   p.Title,
		Version: pageVersion{Number: p.Version},
		Body:    newStorageBody(p.Body),
	})
	if err != nil {
		return call{}, err
	}

	return call{version: V2, method: MethodPut, suffix: pathOf("pages", p.PageID), body: body}, nil
}

// GetPageByID fetches a page through the v2 API.
type GetPageByID struct {
	PageID string
}

func (GetPageByID) Kind() Kind { return KindGetPageByID }

func (p GetPageByID) call() (call, error) {
	if err := require(KindGetPageByID, "page id", p.PageID); err != nil {
		return call{}, err
	}
	return call{version: V2, method: MethodGet, suffix: pathOf("pages", p.PageID)}, nil
}

// DeletePage deletes a page through the v2 API.
type DeletePage struct {
	PageID string
}

func (DeletePage) Kind() Kind { return KindDeletePage }

func (p DeletePage) call() (call, error) {
	if err := require(KindDeletePage, "page id", p.PageID); err != nil {
		return call{}, err
	}
	return call{version: V2, method: MethodDelete, suffix: pathOf("pages", p.PageID)}, nil
}

// GetPageByTitle searches v1 content by title, optionally within a space.
type GetPageByTitle struct {
	Title    string
	SpaceKey string
}

func (GetPageByTitle) Kind() Kind { return KindGetPageByTitle }

func (p GetPageByTitle) call() (call, error) {
	if err := require(KindGetPageByTitle, "title", p.Title); err != nil {
		return call{}, err
	}

	query := map[string]string{"title": p.Title}
	if p.SpaceKey != "" {
		query["spaceKey"] = p.SpaceKey
	}
	return call{version: V1, method: MethodGet, suffix: "content", query: query}, nil
}
