package integration_test

const (
	TestUserUsername = "moviefan"
	TestUserEmail    = "test@example.com"
	TestUserPassword = "Test123!@#"

	TestAdminUsername = "backoffice"
	TestAdminEmail    = "admin@example.com"
	TestAdminPassword = "Admin123!@#"

	TestMovieName        = "Inception"
	TestMovieDescription = "A thief who steals corporate secrets through dream-sharing technology."
	TestMovieImageUrl    = "https://example.com/inception.jpg"
)
