// @title           joe-marks API
// @version         1.0
// @description     Bookmark CRUD service. Authenticate with the configured API token.
// @BasePath        /api
// @securityDefinitions.apikey BearerToken
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and the API token.
package api
