package docs

// @title           fleet-ops API
// @version         1.0
// @description     Shift, delivery and ride tracking backend for the BeeZero and Ecodelivery fleets. Rows live in Google Sheets, photos in S3, sessions in memory.

// @contact.name   API Support

// @host      localhost:3001
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a Cognito ID token, or "Bearer demo-token".
