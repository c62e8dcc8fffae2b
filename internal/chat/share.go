package chat

import (
	"context"
	"encoding/json"
	"net/url"
)

type sharedPublicURLResponse struct {
	apiEnvelope
	File struct {
		PermalinkPublic string `json:"permalink_public"`
	} `json:"file"`
}

type filesInfoResponse struct {
	apiEnvelope
	File struct {
		PermalinkPublic string `json:"permalink_public"`
	} `json:"file"`
}

// SharePublic attempts the optional public-share flow for an uploaded
// file. It never returns an error: if sharedPublicURL fails, it falls
// back to files.info; if that is also unavailable, it returns an empty
// string rather than failing the caller's upload.
func SharePublic(ctx context.Context, client HTTPClient, cfg UploaderConfig, fileID string) string {
	if link := trySharedPublicURL(ctx, client, cfg, fileID); link != "" {
		return link
	}
	return tryFilesInfo(ctx, client, cfg, fileID)
}

func trySharedPublicURL(ctx context.Context, client HTTPClient, cfg UploaderConfig, fileID string) string {
	values := url.Values{}
	values.Set("file", fileID)

	body, status, err := client.PostForm(ctx, cfg.APIBaseURL+"/files.sharedPublicURL", values, cfg.BotToken)
	if err != nil || status < 200 || status >= 300 {
		return ""
	}

	var resp sharedPublicURLResponse
	if err := json.Unmarshal(body, &resp); err != nil || !resp.Ok {
		return ""
	}
	return resp.File.PermalinkPublic
}

func tryFilesInfo(ctx context.Context, client HTTPClient, cfg UploaderConfig, fileID string) string {
	values := url.Values{}
	values.Set("file", fileID)

	body, status, err := client.PostForm(ctx, cfg.APIBaseURL+"/files.info", values, cfg.BotToken)
	if err != nil || status < 200 || status >= 300 {
		return ""
	}

	var resp filesInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil || !resp.Ok {
		return ""
	}
	return resp.File.PermalinkPublic
}
