package dto

type SystemStatusDto struct {
	CommitID            string `json:"commitId"`
	BackendIsReachable  bool   `json:"backendIsReachable"`
	DatabaseIsReachable bool   `json:"databaseIsReachable"`
	Auth0IsReachable    bool   `json:"auth0IsReachable"`
}
