package pkgrouter

import (
	"context"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

// GetParam reads a path parameter stored by httprouter.
func GetParam(ctx context.Context, key string) string {
	return httprouter.ParamsFromContext(ctx).ByName(key)
}

// GetParamInt64 reads a path parameter as a base-10 int64.
func GetParamInt64(ctx context.Context, key string) (int64, error) {
	return strconv.ParseInt(GetParam(ctx, key), 10, 64)
}
