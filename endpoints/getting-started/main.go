// Copyright 2024 Google LLC

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     https://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command getting-started is a Cloud Endpoints sample application. It
// implements a simple echo API and shows how to read the authentication
// information the Endpoints proxy forwards.
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	router := newRouter("swagger.yaml")
	loggedRouter := handlers.LoggingHandler(os.Stdout, router)

	log.Printf("Listening on port %s", port)
	if err := http.ListenAndServe(":"+port, loggedRouter); err != nil {
		log.Fatal(err)
	}
}
