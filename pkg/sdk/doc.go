// Package atlas is the Go client for the atlas query API.
//
// Usage:
//
//	client := atlas.New("https://atlas.example.com",
//		atlas.WithAPIKey("sk-..."),
//	)
//	resp, err := client.Query(ctx, atlas.QueryRequest{
//		QueryText: "good sushi nearby",
//	})
package atlas
