package initializers

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	FirebaseApp     *firebase.App
	AuthClient      *auth.Client
	FirestoreClient *firestore.Client
)

// InitFirebase sets up the Admin SDK used for Google sign-in verification
// and, when STORE_BACKEND=firestore, the document store. Uses the service
// account file when configured, Application Default Credentials otherwise.
func InitFirebase() {
	ctx := context.Background()

	var opts []option.ClientOption
	if path := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		log.Printf("Failed to initialize Firebase app: %v", err)
		return
	}
	FirebaseApp = app

	AuthClient, err = app.Auth(ctx)
	if err != nil {
		log.Printf("Failed to get Firebase auth client: %v", err)
		return
	}

	log.Println("Firebase initialized")
}

func InitFirestoreClient() {
	if FirebaseApp == nil {
		log.Fatal("Firestore backend requires Firebase to be initialized")
	}

	client, err := FirebaseApp.Firestore(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	FirestoreClient = client
}
