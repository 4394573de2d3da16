package confluence

// CreateSpace creates a space through the v1 API.
type CreateSpace struct {
	Key  string
	Name string
}

func (CreateSpace) Kind() Kind { return KindCreateSpace }

func (s CreateSpace) call() (call, error) {
	if err := require(KindCreateSpace, "space key", s.Key, "space name", s.Name); err != nil {
		return call{}, err
	}

	body, err := encodeJSON(struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	}{Key: s.Key, Name: s.Name})
	if err != nil {
		return call{}, err
	}

	return call{version: V1, method: MethodPost, suffix: "space", body: body}, nil
}

// DeleteSpace deletes a space by key through the v1 API.
type DeleteSpace struct {
	Key string
}

func (DeleteSpace) Kind() Kind { return KindDeleteSpace }

func (s DeleteSpace) call() (call, error) {
	if err := require(KindDeleteSpace, "space key", s.Key); err != nil {
		return call{}, err
	}
	return call{version: V1, method: MethodDelete, suffix: pathOf("space", s.Key)}, nil
}

// GetSpaceByName lists v1 spaces filtered by name.
type GetSpaceByName struct {
	Name string
}

func (GetSpaceByName) Kind() Kind { return KindGetSpaceByName }

func (s GetSpaceByName) call() (call, error) {
	if err := require(KindGetSpaceByName, "space name", s.Name); err != nil {
		return call{}, err
	}
	return call{
		version: V1,
		method:  MethodGet,
		suffix:  "space",
		query:   map[string]string{"name": s.Name},
	}, nil
}
