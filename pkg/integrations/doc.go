// Package integrations provides the wallpaper provider adapters and the HTTP
// client they share.
//
// # Overview
//
// Each upstream has its own subpackage implementing [provider.Adapter]:
//
//   - [bing]: the official daily image archive ("official")
//   - [pixabay]: tag search over a random result page ("thirdparty")
//   - [upx8]: numbered random UHD feed ("upx8")
//   - [imgrun]: nonce-addressed random UHD feed ("imgrun-rand")
//
// Adapters only build requests and parse bodies. All network I/O goes through
// [Client], which the orchestrator calls between the two.
//
// # Client
//
// [Client] wraps an [httputil.Fetcher] with default headers, a 2xx status
// check and an optional response cache:
//
//	client := integrations.NewClient(fetcher, cache.NewMemoryCache(), time.Hour,
//	    integrations.DefaultHeaders(""))
//	body, err := client.Fetch(ctx, req)
//
// Only requests marked Cacheable are cached; random feeds never are.
//
// # Adding a Provider
//
//  1. Create a subpackage: pkg/integrations/<provider>/
//  2. Define response structs matching the upstream schema
//  3. Implement [provider.Adapter]
//  4. Add a wallpaper.Type and wire it into [providers.Build]
//
// [bing]: github.com/matzehuels/wallfeed/pkg/integrations/bing
// [pixabay]: github.com/matzehuels/wallfeed/pkg/integrations/pixabay
// [upx8]: github.com/matzehuels/wallfeed/pkg/integrations/upx8
// [imgrun]: github.com/matzehuels/wallfeed/pkg/integrations/imgrun
// [provider.Adapter]: github.com/matzehuels/wallfeed/pkg/provider.Adapter
// [httputil.Fetcher]: github.com/matzehuels/wallfeed/pkg/httputil.Fetcher
// [providers.Build]: github.com/matzehuels/wallfeed/pkg/providers.Build
package integrations
