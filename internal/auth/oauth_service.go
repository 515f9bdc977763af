package auth

// OAuthService wires the authorization-code and client-credentials flows
// together: issuing codes at the authorize endpoint, exchanging them for
// bearer tokens, and handling machine token grants. All dependencies are
// injected; the service holds no request state.
type OAuthService struct {
	codes    *CodeStore
	creds    *CredentialStore
	access   *AccessTokenCodec
	client   *ClientTokenCodec
	sessions SessionProvider
}

func NewOAuthService(
	codes *CodeStore,
	creds *CredentialStore,
	access *AccessTokenCodec,
	client *ClientTokenCodec,
	sessions SessionProvider,
) *OAuthService {
	return &OAuthService{
		codes:    codes,
		creds:    creds,
		access:   access,
		client:   client,
		sessions: sessions,
	}
}
