package natives

import (
	"fmt"
	"io"
	"net/http"

	"github.com/fenlang/fen/fenvm"
	"github.com/fenlang/fen/nets"
)

func addFetch(r Registry, client nets.HTTPClient) {
	r["fetch"] = func(ip *fenvm.Interp, args []any) (any, error) {
		if err := want("fetch", args, 1); err != nil {
			return nil, err
		}
		url, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("fetch: want a url, got %s", fenvm.TypeName(args[0]))
		}

		req, err := http.NewRequestWithContext(ip.Ctx(), http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		content, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
		}
		return string(content), nil
	}
}
