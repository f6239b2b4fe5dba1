package lib

import (
	"context"
	"etm/src/config"
	"log"
	"os"
	"path"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

var innerApp *firebase.App
var innerBucket *gcs.BucketHandle

func getOpts() *option.ClientOption {
	secretsPath := os.Getenv("SECRETS_DIR")
	opt := option.WithCredentialsFile(path.Join(secretsPath, "admin-sdk-credentials.json"))
	return &opt
}

// GetStorageBucket returns the default media bucket, or nil when storage is
// not configured; callers skip uploads in that case.
func GetStorageBucket() *gcs.BucketHandle {
	if innerBucket != nil {
		return innerBucket
	}
	bucketName := config.GetStorageBucketName()
	if bucketName == "" {
		return nil
	}
	opt := getOpts()
	if innerApp == nil {
		app, err := firebase.NewApp(context.Background(), &firebase.Config{StorageBucket: bucketName}, *opt)
		if err != nil {
			log.Printf("error initializing app: %v\n", err.Error())
			return nil
		}
		innerApp = app
	}
	storage, err := innerApp.Storage(context.Background())
	if err != nil {
		log.Printf("error initializing Storage: %v\n", err.Error())
		return nil
	}
	bucket, err := storage.DefaultBucket()
	if err != nil {
		log.Printf("error retrieving bucket handle: %v\n", err.Error())
		return nil
	}
	innerBucket = bucket
	return bucket
}

func NewFirebaseApp(app *firebase.App) {
	innerApp = app
}
