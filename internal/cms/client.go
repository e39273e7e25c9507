package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Asset types accepted by the copy endpoint.
const (
	AssetTypeFolder = "folder"
	AssetTypePage   = "page"
)

const defaultRequestTimeout = 30 * time.Second

// Client talks to the CMS REST API. The copy endpoint does not return the
// new asset's id, so every successful copy is followed by a child lookup in
// the destination folder.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient returns a Client for the CMS at baseURL authenticating with
// apiKey. A nil httpClient gets a default with a request timeout.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// Copier returns an AssetCreator that copies assets of the given type.
func (c *Client) Copier(assetType string) AssetCreator {
	return &typedCopier{client: c, assetType: assetType}
}

// typedCopier binds a Client to one asset type.
type typedCopier struct {
	client    *Client
	assetType string
}

func (t *typedCopier) CreateAssetCopy(ctx context.Context, templateID, parentID, name string) (string, error) {
	return t.client.copyAsset(ctx, t.assetType, templateID, parentID, name)
}

// copyParameters is the request body of the copy endpoint.
type copyRequest struct {
	CopyParameters struct {
		DestinationContainerIdentifier struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"destinationContainerIdentifier"`
		DoWorkflow bool   `json:"doWorkflow"`
		NewName    string `json:"newName"`
	} `json:"copyParameters"`
}

// apiResponse is the envelope every endpoint returns.
type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Asset   json.RawMessage `json:"asset"`
}

// copyAsset copies the template under parentID with the new name, then looks
// the created asset's id up among the parent's children.
func (c *Client) copyAsset(ctx context.Context, assetType, templateID, parentID, name string) (string, error) {
	var body copyRequest
	body.CopyParameters.DestinationContainerIdentifier.ID = parentID
	body.CopyParameters.DestinationContainerIdentifier.Type = AssetTypeFolder
	body.CopyParameters.DoWorkflow = false
	body.CopyParameters.NewName = name

	var resp apiResponse
	if err := c.post(ctx, fmt.Sprintf("/api/v1/copy/%s/%s", assetType, templateID), &body, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("copy %s %q: %s", assetType, name, messageOrUnknown(resp.Message))
	}

	id, err := c.folderChildID(ctx, parentID, name)
	if err != nil {
		return "", fmt.Errorf("looking up created %s %q: %w", assetType, name, err)
	}
	if id == "" {
		return "", fmt.Errorf("created %s %q not found under parent %s", assetType, name, parentID)
	}
	return id, nil
}

// folderChild is one entry of a folder's children list.
type folderChild struct {
	ID   string `json:"id"`
	Path struct {
		Path string `json:"path"`
	} `json:"path"`
}

// folderChildID reads the folder and returns the id of the child whose leaf
// name matches, or "" when absent.
func (c *Client) folderChildID(ctx context.Context, folderID, childName string) (string, error) {
	var resp struct {
		apiResponse
		Asset struct {
			Folder struct {
				Children []folderChild `json:"children"`
			} `json:"folder"`
		} `json:"asset"`
	}
	if err := c.post(ctx, "/api/v1/read/folder/"+folderID, nil, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("read folder %s: %s", folderID, messageOrUnknown(resp.Message))
	}

	for _, child := range resp.Asset.Folder.Children {
		segs := strings.Split(child.Path.Path, "/")
		if segs[len(segs)-1] == childName {
			return child.ID, nil
		}
	}
	return "", nil
}

// post sends a JSON POST to path with the api key as a query parameter and
// decodes the JSON response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	u := c.baseURL + path
	if c.apiKey != "" {
		u += "?apiKey=" + url.QueryEscape(c.apiKey)
	}

	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &payload)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("calling %s: unexpected status %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

func messageOrUnknown(msg string) string {
	if msg == "" {
		return "unknown error"
	}
	return msg
}
