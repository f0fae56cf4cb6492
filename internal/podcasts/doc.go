// Package podcasts provides an HTTP client for the podcast ad-removal API.
//
// # Overview
//
// The server owns every expensive step (transcription, ad detection, audio
// splicing). This package only knows how to ask for them:
//
//   - GET  /podcasts: JSON array of filenames, in server order
//   - POST /analyze:  {"filename": ...}, any 2xx means the analysis finished
//   - POST /splice:   {"filename": ...}, responds with {"output_filename": ...}
//
// # Client Usage
//
//	client, err := podcasts.NewClient("http://127.0.0.1:8000", nil)
//	if err != nil {
//		return err
//	}
//
//	names, err := client.ListPodcasts(ctx)
//	out, err := client.Splice(ctx, "episode-42.mp3")
//	fmt.Println(out.OutputFilename)
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and a podcutter User-Agent
//   - Carry an X-Request-ID header (from WithRequestID, or a fresh UUID)
//
// Any transport failure, non-2xx status or undecodable body is returned as an
// error. Non-2xx responses wrap ErrStatus and include a short prefix of the
// response body for the log; callers do not inspect it further.
//
// # Base URL
//
// Bare host:port values get an http:// scheme. Any path, query or fragment on
// the configured URL is dropped so endpoint paths always resolve from the
// origin.
package podcasts
