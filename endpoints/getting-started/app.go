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

package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gorilla/mux"
)

// userInfoHeader is set by the Endpoints proxy after it validates the caller's
// credentials.
const userInfoHeader = "X-Endpoint-API-UserInfo"

// newRouter wires up the echo API routes. swaggerPath points at the OpenAPI
// spec served from /api-docs.
func newRouter(swaggerPath string) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/echo", echoHandler).Methods("POST")
	r.HandleFunc("/auth/info/googlejwt", authInfoHandler).Methods("GET")
	r.HandleFunc("/auth/info/googleidtoken", authInfoHandler).Methods("GET")
	r.HandleFunc("/api-docs", swaggerHandler(swaggerPath)).Methods("GET")
	return r
}

// echoHandler echoes the message field of the request body back to the caller.
func echoHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		errorResponse(w, http.StatusBadRequest, fmt.Sprintf("could not parse the request body: %v", err))
		return
	}
	writeJSON(w, map[string]string{"message": body.Message})
}

// authInfoHandler returns the authentication information forwarded by the
// Endpoints proxy, or an anonymous identity when the header is absent.
func authInfoHandler(w http.ResponseWriter, r *http.Request) {
	encodedInfo := r.Header.Get(userInfoHeader)
	if encodedInfo == "" {
		writeJSON(w, map[string]string{"id": "anonymous"})
		return
	}

	info, err := decodeUserInfo(encodedInfo)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("could not decode the user info header: %v", err))
		return
	}
	writeJSON(w, info)
}

// decodeUserInfo decodes the base64 encoded JSON the proxy places in the user
// info header. Proxy versions differ on alphabet and padding, so both the
// URL-safe and standard alphabets are accepted, padded or not.
func decodeUserInfo(encoded string) (map[string]interface{}, error) {
	encoded = strings.TrimRight(encoded, "=")
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, err
	}
	var info map[string]interface{}
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// swaggerHandler serves the OpenAPI spec converted to JSON.
func swaggerHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(path)
		if err != nil {
			errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("could not read the API spec: %v", err))
			return
		}
		jsonSpec, err := yaml.YAMLToJSON(data)
		if err != nil {
			errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("could not convert the API spec to JSON: %v", err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(jsonSpec)
	}
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("could not encode the response: %v", err))
	}
}

// errorResponse replies with a swagger-compliant JSON error body.
func errorResponse(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    code,
		"message": message,
	})
}
