package initializers

import (
	"log"
	"os"

	"github.com/ClassroomPrayers/gateway"
)

// Store is the document store the whole service syncs through. Swapped for
// a memory store in tests.
var Store gateway.Store

// InitStore selects the gateway backend from STORE_BACKEND:
// firestore (production), postgres, or memory (local development).
func InitStore() {
	switch backend := os.Getenv("STORE_BACKEND"); backend {
	case "firestore":
		InitFirestoreClient()
		Store = gateway.NewFirestore(FirestoreClient)
		log.Println("Using Firestore document store")
	case "postgres":
		ConnectDB()
		Store = gateway.NewPostgres(DB)
		log.Println("Using Postgres document store")
	case "", "memory":
		Store = gateway.NewMemory()
		log.Println("Using in-memory document store")
	default:
		log.Fatalf("Unknown STORE_BACKEND %q", backend)
	}
}
