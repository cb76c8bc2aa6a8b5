// Package httpclient is the outbound HTTP client used for the completion
// endpoint and the transcription sidecar. It resolves paths against a base
// URL, encodes JSON and streamed multipart bodies, and classifies failures
// by Kind.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL:     "https://api.openai.com/v1",
//	    Timeout:     60 * time.Second,
//	    BearerToken: apiKey,
//	})
//	resp, err := httpclient.PostJSON[chatResponse](ctx, client, "/chat/completions", body)
package httpclient
