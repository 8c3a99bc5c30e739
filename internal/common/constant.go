package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// ProductionEnv is the environment tag of production deployments.
const ProductionEnv = "production"
