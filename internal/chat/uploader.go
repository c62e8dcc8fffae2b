package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// UploaderConfig carries the Web API base URL and bot token the uploader
// authenticates with. A missing token is a config_error at call time.
type UploaderConfig struct {
	APIBaseURL string
	BotToken   string
	ChannelID  string
}

// UploadResult is the uploader's success shape. Permalink is optional.
// UploadFile never sets PermalinkPublic, so it stays empty; the public
// link is returned separately by SharePublic.
type UploadResult struct {
	Permalink       string
	FileID          string
	PermalinkPublic string
}

type apiEnvelope struct {
	Ok               bool             `json:"ok"`
	Error            string           `json:"error,omitempty"`
	ResponseMetadata responseMetadata `json:"response_metadata,omitempty"`
}

type responseMetadata struct {
	Messages []string `json:"messages,omitempty"`
}

func (e apiEnvelope) asError(action string) *Error {
	return apiError(fmt.Sprintf("%s: upstream reported ok=false (%s)", action, e.Error), e.ResponseMetadata.Messages)
}

type getUploadURLResponse struct {
	apiEnvelope
	UploadURL string `json:"upload_url"`
	FileID    string `json:"file_id"`
}

type completeUploadResponse struct {
	apiEnvelope
	Files []struct {
		ID        string `json:"id"`
		Permalink string `json:"permalink"`
	} `json:"files"`
}

// UploadFile runs the three-leg external upload protocol sequentially:
// request an upload URL, POST the bytes as a multipart body, then
// complete the upload. Each
// leg surfaces a distinct error kind on failure — api_error for a
// non-ok payload, http_error for a non-2xx transport response.
func UploadFile(ctx context.Context, client HTTPClient, cfg UploaderConfig, filename string, data []byte, title, initialComment string) (UploadResult, error) {
	if cfg.BotToken == "" {
		return UploadResult{}, configError("chat bot token is required for file upload")
	}

	uploadURL, fileID, err := requestUploadURL(ctx, client, cfg, filename, len(data))
	if err != nil {
		return UploadResult{}, err
	}

	if err := putFileBytes(ctx, client, uploadURL, filename, data); err != nil {
		return UploadResult{}, err
	}

	permalink, err := completeUpload(ctx, client, cfg, fileID, title, initialComment)
	if err != nil {
		return UploadResult{}, err
	}

	return UploadResult{Permalink: permalink, FileID: fileID}, nil
}

func requestUploadURL(ctx context.Context, client HTTPClient, cfg UploaderConfig, filename string, length int) (string, string, error) {
	values := url.Values{}
	values.Set("filename", filename)
	values.Set("length", strconv.Itoa(length))

	body, status, err := client.PostForm(ctx, cfg.APIBaseURL+"/files.getUploadURLExternal", values, cfg.BotToken)
	if err != nil {
		return "", "", httpError("requesting upload URL", err)
	}
	if status < 200 || status >= 300 {
		return "", "", httpError(fmt.Sprintf("getUploadURLExternal returned status %d", status), nil)
	}

	var resp getUploadURLResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", httpError("decoding getUploadURLExternal response", err)
	}
	if !resp.Ok {
		return "", "", resp.asError("getUploadURLExternal")
	}
	return resp.UploadURL, resp.FileID, nil
}

func putFileBytes(ctx context.Context, client HTTPClient, uploadURL, filename string, data []byte) error {
	_, status, err := client.PostFileBytes(ctx, uploadURL, "file", filename, data)
	if err != nil {
		return httpError("uploading file bytes", err)
	}
	if status < 200 || status >= 300 {
		return httpError(fmt.Sprintf("file byte upload returned status %d", status), nil)
	}
	return nil
}

func completeUpload(ctx context.Context, client HTTPClient, cfg UploaderConfig, fileID, title, initialComment string) (string, error) {
	type fileRef struct {
		ID    string `json:"id"`
		Title string `json:"title,omitempty"`
	}
	filesJSON, err := json.Marshal([]fileRef{{ID: fileID, Title: title}})
	if err != nil {
		return "", httpError("encoding completeUploadExternal files payload", err)
	}

	values := url.Values{}
	values.Set("files", string(filesJSON))
	if cfg.ChannelID != "" {
		values.Set("channel_id", cfg.ChannelID)
	}
	if initialComment != "" {
		values.Set("initial_comment", initialComment)
	}

	body, status, err := client.PostForm(ctx, cfg.APIBaseURL+"/files.completeUploadExternal", values, cfg.BotToken)
	if err != nil {
		return "", httpError("completing upload", err)
	}
	if status < 200 || status >= 300 {
		return "", httpError(fmt.Sprintf("completeUploadExternal returned status %d", status), nil)
	}

	var resp completeUploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", httpError("decoding completeUploadExternal response", err)
	}
	if !resp.Ok {
		return "", resp.asError("completeUploadExternal")
	}
	if len(resp.Files) == 0 {
		return "", nil
	}
	return resp.Files[0].Permalink, nil
}
