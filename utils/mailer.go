package utils

import (
	"context"
	"fmt"
	"os"

	"safebaby/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

var sesClient *ses.Client

// InitMailer must be called once at startup.
func InitMailer() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		logger.Fatal("AWS config load failed", zap.Error(err))
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		logger.Error("SES send failed", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// Forgot Password email sender
func SendResetEmail(to string, code string) error {
	subject := "Password Reset Code"
	body := fmt.Sprintf("Your password reset code is: %s\n\nUse this in the app to set a new password.", code)
	return sendEmail(to, subject, body)
}

// SendContactEmail relays a contact-form submission to the support inbox.
func SendContactEmail(fromName, fromEmail, subject, message string) error {
	support := os.Getenv("SUPPORT_EMAIL")
	if support == "" {
		support = os.Getenv("SES_EMAIL")
	}
	body := fmt.Sprintf("From: %s <%s>\n\n%s", fromName, fromEmail, message)
	return sendEmail(support, "[contact] "+subject, body)
}
