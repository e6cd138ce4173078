package donorapi

import (
	"context"

	"github.com/preston-bernstein/donor-home-service/internal/payload"
)

type endpointChain struct {
	name   string
	entity string
	paths  []string
}

// walk tries each path of the chain in order and stops at the first response that unwraps to a list.
// answered reports that at least one path returned a successful response; lastErr is the most
// recent transport or status failure.
func (c *Client) walk(ctx context.Context, chain endpointChain, userID string) (items []any, found, answered bool, lastErr error) {
	for i, path := range chain.paths {
		resolved := withUser(path, userID)
		body, err := c.getJSON(ctx, resolved)
		if err != nil {
			lastErr = err
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, false, answered, ctxErr
			}
			c.logDebug(ctx, "list endpoint failed", chain.name, "path", resolved, "err", err)
			continue
		}
		answered = true
		if list, ok := payload.UnwrapList(body, chain.entity); ok {
			if i > 0 {
				c.logDebug(ctx, "list served by fallback endpoint", chain.name, "path", resolved)
			}
			return list, true, true, nil
		}
	}
	return nil, false, answered, lastErr
}
