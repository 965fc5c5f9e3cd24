package main

import (
	"flag"
	"fmt"

	"secureid/internal/storage/sqlite"
)

func main() {
	var storagePath string
	var down bool

	flag.StringVar(&storagePath, "storage-path", "", "path to the sqlite database")
	flag.BoolVar(&down, "down", false, "roll back every migration instead of applying them")
	flag.Parse()

	if storagePath == "" {
		panic("storage-path is required")
	}

	storage, err := sqlite.New(storagePath)
	if err != nil {
		panic(err)
	}
	defer storage.Close()

	if down {
		if err := storage.Rollback(); err != nil {
			panic(err)
		}
		fmt.Println("migrations rolled back")
		return
	}

	if err := storage.Migrate(); err != nil {
		panic(err)
	}

	fmt.Println("migrations applied")
}
