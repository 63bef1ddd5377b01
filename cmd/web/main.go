// @title           ITI Jobs Admin API
// @version         1.0
// @description     Администрирование пользователей и одобрение работодателей.
// @host            localhost:8000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

package main

import "itijobs_backend/internal/app"

func main() {
	app.Run()
}
