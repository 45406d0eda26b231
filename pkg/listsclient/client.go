package listsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"

	"github.com/pkg/errors"
)

// UserHeader is the header used to send the acting user.
const UserHeader = "X-Remote-User"

type (
	// A Client defines all interactions that can be performed on a lists server.
	Client interface {
		// SetSpace sets the space targeted by the requests. An empty space targets the default one.
		SetSpace(space string)
		// SetUser sets the acting user sent with the requests. An empty user lets the server use its default.
		SetUser(user string)

		// CreateList creates a list.
		CreateList(ctx context.Context, params CreateListParams) (*List, error)
		// GetList returns the list for the given id.
		GetList(ctx context.Context, id string) (*List, error)
		// UpdateList changes the name and/or the description of a list.
		UpdateList(ctx context.Context, params UpdateListParams) (*List, error)
		// DeleteList deletes the list for the given id.
		DeleteList(ctx context.Context, id string) (*List, error)

		// CreateListItem adds a value to a list.
		CreateListItem(ctx context.Context, params CreateListItemParams) (*ListItem, error)
		// GetListItem returns the list item for the given id.
		GetListItem(ctx context.Context, id string) (*ListItem, error)
		// FindListItems returns the items of the list holding the given value.
		FindListItems(ctx context.Context, listID, value string) ([]ListItem, error)
		// DeleteListItem deletes the list item for the given id.
		DeleteListItem(ctx context.Context, id string) (*ListItem, error)
		// DeleteListItemsByValue deletes the items of the list holding the given value.
		DeleteListItemsByValue(ctx context.Context, listID, value string) ([]ListItem, error)

		// ImportListItems uploads values, one per line.
		ImportListItems(ctx context.Context, params ImportParams) (*ImportResult, error)
		// ExportListItems writes the values of a list to w, one per line.
		ExportListItems(ctx context.Context, listID string, w io.Writer) error
	}

	client struct {
		http     *http.Client
		endpoint string
		space    string
		user     string
	}
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) SetSpace(space string) {
	c.space = space
}

func (c *client) SetUser(user string) {
	c.user = user
}

func (c *client) CreateList(ctx context.Context, params CreateListParams) (*List, error) {
	var list List
	return &list, c.json(ctx, http.MethodPost, "/lists", nil, params, &list)
}

func (c *client) GetList(ctx context.Context, id string) (*List, error) {
	var list List
	return &list, c.json(ctx, http.MethodGet, "/lists", url.Values{"id": {id}}, nil, &list)
}

func (c *client) UpdateList(ctx context.Context, params UpdateListParams) (*List, error) {
	var list List
	return &list, c.json(ctx, http.MethodPatch, "/lists", nil, params, &list)
}

func (c *client) DeleteList(ctx context.Context, id string) (*List, error) {
	var list List
	return &list, c.json(ctx, http.MethodDelete, "/lists", url.Values{"id": {id}}, nil, &list)
}

func (c *client) CreateListItem(ctx context.Context, params CreateListItemParams) (*ListItem, error) {
	var item ListItem
	return &item, c.json(ctx, http.MethodPost, "/lists/items", nil, params, &item)
}

func (c *client) GetListItem(ctx context.Context, id string) (*ListItem, error) {
	var item ListItem
	return &item, c.json(ctx, http.MethodGet, "/lists/items", url.Values{"id": {id}}, nil, &item)
}

func (c *client) FindListItems(ctx context.Context, listID, value string) ([]ListItem, error) {
	var items []ListItem
	return items, c.json(ctx, http.MethodGet, "/lists/items", url.Values{"list_id": {listID}, "value": {value}}, nil, &items)
}

func (c *client) DeleteListItem(ctx context.Context, id string) (*ListItem, error) {
	var item ListItem
	return &item, c.json(ctx, http.MethodDelete, "/lists/items", url.Values{"id": {id}}, nil, &item)
}

func (c *client) DeleteListItemsByValue(ctx context.Context, listID, value string) ([]ListItem, error) {
	var items []ListItem
	return items, c.json(ctx, http.MethodDelete, "/lists/items", url.Values{"list_id": {listID}, "value": {value}}, nil, &items)
}

func (c *client) ImportListItems(ctx context.Context, params ImportParams) (*ImportResult, error) {
	query := url.Values{}
	if params.ListID != "" {
		query.Set("list_id", params.ListID)
	}
	if params.Type != "" {
		query.Set("type", params.Type)
	}

	//
	// Stream the multipart body
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", params.Filename)
		if err == nil {
			_, err = io.Copy(part, params.Reader)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	res, err := c.do(ctx, http.MethodPost, "/lists/items/_import", query, mw.FormDataContentType(), pr)
	if err != nil {
		pr.CloseWithError(err)
		return nil, err
	}
	defer res.Body.Close()

	var result ImportResult
	dec := json.NewDecoder(res.Body)
	return &result, errors.Wrap(dec.Decode(&result), "could not parse response")
}

func (c *client) ExportListItems(ctx context.Context, listID string, w io.Writer) error {
	res, err := c.do(ctx, http.MethodPost, "/lists/items/_export", url.Values{"list_id": {listID}}, "", nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	_, err = io.Copy(w, res.Body)
	return errors.Wrap(err, "could not read values")
}

//
// Helpers
//

func (c *client) url(p string, query url.Values) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", errors.Wrap(err, "could not parse endpoint")
	}

	prefix := "/api"
	if c.space != "" {
		prefix = path.Join("/s", c.space, "api")
	}
	u.Path = path.Join(u.Path, prefix, p)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// json performs a request with an optional JSON payload and decodes the JSON response into v.
func (c *client) json(ctx context.Context, method, p string, query url.Values, payload, v any) error {
	var body io.Reader
	var contentType string
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "could not serialize params")
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	res, err := c.do(ctx, method, p, query, contentType, body)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(v), "could not parse response")
}

// do performs the request. Error responses are returned as *Error.
func (c *client) do(ctx context.Context, method, p string, query url.Values, contentType string, body io.Reader) (*http.Response, error) {
	u, err := c.url(p, query)
	if err != nil {
		return nil, err
	}

	//
	// Build request
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Accept", "application/json")
	if contentType != "" {
		req.Header.Add("Content-Type", contentType)
	}
	if c.user != "" {
		req.Header.Add(UserHeader, c.user)
	}

	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not perform request")
	}

	if res.StatusCode >= 400 {
		defer res.Body.Close()
		return nil, parseError(res.Body, res.StatusCode)
	}

	return res, nil
}
