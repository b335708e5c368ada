package config

// Config 配置主体
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Mongo      MongoConfig      `mapstructure:"mongo"`
	Redis      RedisConfig      `mapstructure:"redis"`
	MinIO      MinIOConfig      `mapstructure:"minio"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Admin      AdminConfig      `mapstructure:"admin"`
	Moderation ModerationConfig `mapstructure:"moderation"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// StorageConfig 存储适配层配置
// Driver 决定启动时选用哪种实现: mongo / redis / memory
type StorageConfig struct {
	Driver      string            `mapstructure:"driver"`
	OpTimeout   int               `mapstructure:"op_timeout"`
	Collections CollectionsConfig `mapstructure:"collections"`
}

// CollectionsConfig 逻辑集合名
type CollectionsConfig struct {
	Entries  string `mapstructure:"entries"`
	Comments string `mapstructure:"comments"`
}

// MongoConfig Mongo配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Bucket        string `mapstructure:"bucket"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type KafkaConfig struct {
	Brokers []string   `mapstructure:"brokers"`
	Sasl    SaslConfig `mapstructure:"sasl"`
	Topic   string     `mapstructure:"topic"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// AdminConfig 管理口令与会话令牌配置
// PasskeyHash 存 bcrypt 哈希，原文不落盘、不入日志
type AdminConfig struct {
	PasskeyHash string `mapstructure:"passkey_hash"`
	JWTSecret   string `mapstructure:"jwt_secret"`
	TokenTTL    int    `mapstructure:"token_ttl"`
}

// ModerationConfig 举报阈值与归档保留策略
type ModerationConfig struct {
	EntryThreshold   int64 `mapstructure:"entry_threshold"`
	CommentThreshold int64 `mapstructure:"comment_threshold"`
	RetentionDays    int   `mapstructure:"retention_days"`
}
