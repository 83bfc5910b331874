package auth

import "context"

type oturumContextKey struct{}

// ContextWithOturum doğrulanmış oturumu context'e ekler.
func ContextWithOturum(ctx context.Context, oturum *Oturum) context.Context {
	if oturum == nil {
		return ctx
	}
	return context.WithValue(ctx, oturumContextKey{}, oturum)
}

// OturumFromContext context'teki doğrulanmış oturumu döndürür.
// Request Gate'ten geçmiş isteklerde bulunur.
func OturumFromContext(ctx context.Context) (*Oturum, bool) {
	if ctx == nil {
		return nil, false
	}
	v, ok := ctx.Value(oturumContextKey{}).(*Oturum)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
