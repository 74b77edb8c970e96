package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"kindred_server/realtime"
	"kindred_server/routes"
	"kindred_server/services"
	"kindred_server/socket"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize S3 presigner for avatar uploads
	awsCfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	s3Service := &services.S3Service{
		Presigner: s3.NewPresignClient(s3.NewFromConfig(awsCfg)),
		Bucket:    os.Getenv("S3_BUCKET_NAME"),
	}

	// Realtime hub and socket.io bridge
	hub := realtime.NewHub()
	socketServer := socket.NewSocketServer()
	hub.SetForwarder(socket.Forwarder(socketServer))
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()

	// Initialize Services
	blockService := &services.BlockService{Dynamo: dynamoService, Hub: hub}
	chatService := &services.ChatService{Dynamo: dynamoService, Hub: hub}
	swipeService := &services.SwipeService{Dynamo: dynamoService, Blocks: blockService, Chat: chatService}
	meetupService := &services.MeetupService{Dynamo: dynamoService, Chat: chatService, Hub: hub}
	matchService := &services.MatchService{Dynamo: dynamoService}
	discoveryService := &services.DiscoveryService{Dynamo: dynamoService, Blocks: blockService, Swipes: swipeService}
	profileService := &services.UserProfileService{Dynamo: dynamoService}
	icebreakerService := &services.IcebreakerService{Composer: services.StaticComposer{}}
	alertService := &services.AlertService{Profiles: profileService, Icebreakers: icebreakerService, Notifier: services.LogNotifier{}}
	reportService := &services.ReportService{Dynamo: dynamoService}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Kindred")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterSwipeRoutes(r, swipeService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterMeetupRoutes(r, meetupService)
	routes.RegisterMatchRoutes(r, matchService, blockService)
	routes.RegisterBlockRoutes(r, blockService)
	routes.RegisterDiscoveryRoutes(r, discoveryService)
	routes.RegisterSafetyRoutes(r, icebreakerService, alertService, reportService)
	routes.RegisterUserProfileRoutes(r, profileService)
	routes.RegisterS3Routes(r, s3Service)

	// Mount the socket.io endpoint
	r.PathPrefix("/socket.io/").Handler(socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
